package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/drewmudry/scriptcast-api/dialogue"
	"github.com/drewmudry/scriptcast-api/internal/testdb"
	"github.com/drewmudry/scriptcast-api/models"
	"gorm.io/gorm"
)

func newStore(t *testing.T) *Store {
	return New(testdb.Open(t))
}

func TestCreateScriptWithDialogues(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	lines := dialogue.Parse("ALICE: Hello\nBOB: (waves) Hi\nnoise\nALICE: Bye")
	script, err := s.CreateScriptWithDialogues(ctx, "script-1", "kitchen", lines)
	if err != nil {
		t.Fatal("CreateScriptWithDialogues:", err)
	}
	if len(script.Dialogues) != 3 {
		t.Fatalf("expected 3 dialogues, got %d", len(script.Dialogues))
	}

	found, err := s.FindScript(ctx, "script-1")
	if err != nil {
		t.Fatal("FindScript:", err)
	}
	if found.Location != "kitchen" {
		t.Errorf("Location = %q", found.Location)
	}

	rows, err := s.ListDialogues(ctx, "script-1")
	if err != nil {
		t.Fatal("ListDialogues:", err)
	}
	for i, row := range rows {
		if row.Sequence != i+1 {
			t.Errorf("row %d has sequence %d", i, row.Sequence)
		}
		if row.Speaker != lines[i].Speaker || row.Dialogue != lines[i].Text {
			t.Errorf("row %d = %s/%s, want %s/%s", i, row.Speaker, row.Dialogue, lines[i].Speaker, lines[i].Text)
		}
	}
}

func TestCreateScriptWithDialoguesRollsBack(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	err := s.DB.Callback().Create().Before("gorm:create").Register("test:fail_dialogues", func(tx *gorm.DB) {
		if tx.Statement.Table == "dialogue" {
			_ = tx.AddError(errors.New("disk full"))
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.CreateScriptWithDialogues(ctx, "script-1", "", []dialogue.Line{{Speaker: "BOB", Text: "Yo"}})
	if err == nil {
		t.Fatal("expected dialogue insert to fail")
	}

	if _, err := s.FindScript(ctx, "script-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("script should have been rolled back, got %v", err)
	}
}

func TestFindScriptNotFound(t *testing.T) {
	s := newStore(t)
	_, err := s.FindScript(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound in chain, got %v", err)
	}
}

func TestVideoRequiresScript(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	if err := s.CreateVideo(ctx, "video-1", "no-such-script", models.VideoStatusPending); err == nil {
		t.Error("expected video insert without script to fail")
	}
	if _, _, err := s.CreateVideoIfAbsent(ctx, "no-such-script"); err == nil {
		t.Error("expected insert-if-absent without script to fail")
	}
}

func TestCreateVideoIfAbsent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	if err := s.CreateScript(ctx, "script-1", ""); err != nil {
		t.Fatal(err)
	}

	first, created, err := s.CreateVideoIfAbsent(ctx, "script-1")
	if err != nil {
		t.Fatal("CreateVideoIfAbsent:", err)
	}
	if !created || first.Status != models.VideoStatusPending {
		t.Fatalf("expected new pending video, got created=%v status=%s", created, first.Status)
	}

	second, created, err := s.CreateVideoIfAbsent(ctx, "script-1")
	if err != nil {
		t.Fatal("CreateVideoIfAbsent:", err)
	}
	if created {
		t.Fatal("second call should not create a video")
	}
	if second.VideoID != first.VideoID {
		t.Fatalf("video id changed: %s vs %s", second.VideoID, first.VideoID)
	}
}

func TestCreateVideoIfAbsentConcurrent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	if err := s.CreateScript(ctx, "script-1", ""); err != nil {
		t.Fatal(err)
	}

	const callers = 8
	ids := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := s.CreateVideoIfAbsent(ctx, "script-1")
			if err != nil {
				t.Errorf("caller %d: %v", i, err)
				return
			}
			ids[i] = v.VideoID
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("callers saw different videos: %v", ids)
		}
	}

	var count int64
	s.DB.Model(&models.Video{}).Where("script_id = ?", "script-1").Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 video row, got %d", count)
	}
}

func TestListStaleVideos(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		if err := s.CreateScript(ctx, id, ""); err != nil {
			t.Fatal(err)
		}
		if err := s.CreateVideo(ctx, "video-"+id, id, models.VideoStatusPending); err != nil {
			t.Fatal(err)
		}
	}
	old := time.Now().Add(-time.Hour)
	if err := s.DB.Model(&models.Video{}).Where("video_id = ?", "video-a").UpdateColumn("updated_at", old).Error; err != nil {
		t.Fatal(err)
	}

	stale, err := s.ListStaleVideos(ctx, time.Now().Add(-time.Minute), models.VideoStatusPending)
	if err != nil {
		t.Fatal("ListStaleVideos:", err)
	}
	if len(stale) != 1 || stale[0].VideoID != "video-a" {
		t.Fatalf("unexpected stale videos: %+v", stale)
	}

	if err := s.UpdateVideoStatus(ctx, "video-a", models.VideoStatusCompleted); err != nil {
		t.Fatal(err)
	}
	stale, err = s.ListStaleVideos(ctx, time.Now().Add(time.Minute), models.VideoStatusPending)
	if err != nil {
		t.Fatal(err)
	}
	if len(stale) != 1 || stale[0].VideoID != "video-b" {
		t.Fatalf("unexpected stale videos after update: %+v", stale)
	}

	if err := s.UpdateVideoStatus(ctx, "video-a", models.VideoStatusProcessing); err != nil {
		t.Fatal(err)
	}
	stale, err = s.ListStaleVideos(ctx, time.Now().Add(time.Minute), models.VideoStatusPending, models.VideoStatusProcessing)
	if err != nil {
		t.Fatal(err)
	}
	if len(stale) != 2 {
		t.Fatalf("expected pending and processing videos, got %+v", stale)
	}
}
