package dialogue

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []Line
	}{
		{
			name:   "drops unmatched and empty lines",
			script: "ALICE: Hello there\nBOB: (whispering) Hi\nnot a line\nCHARLIE:\n",
			want: []Line{
				{Speaker: "ALICE", Text: "Hello there"},
				{Speaker: "BOB", Text: "Hi"},
			},
		},
		{
			name:   "stage direction only is dropped",
			script: "BOB: (sighs)\nALICE: Fine.",
			want:   []Line{{Speaker: "ALICE", Text: "Fine."}},
		},
		{
			name:   "lowercase and digit speakers do not match",
			script: "Alice: hi\nR2D2: beep\nBOB2: nope\nEVE: yes",
			want:   []Line{{Speaker: "EVE", Text: "yes"}},
		},
		{
			name:   "close paren inside stage direction ends it early",
			script: "BOB: (points :) at sign) Look",
			want:   []Line{{Speaker: "BOB", Text: "at sign) Look"}},
		},
		{
			name:   "second aside stays in the text",
			script: "BOB: (quietly) (to ALICE) Go now",
			want:   []Line{{Speaker: "BOB", Text: "(to ALICE) Go now"}},
		},
		{
			name:   "aside later in the line is kept",
			script: "ALICE: Wait (beat) what?",
			want:   []Line{{Speaker: "ALICE", Text: "Wait (beat) what?"}},
		},
		{
			name:   "surrounding whitespace and CRLF",
			script: "\r\n   ALICE:   Hi   \r\n\r\n\tBOB:Yo\r\n",
			want: []Line{
				{Speaker: "ALICE", Text: "Hi"},
				{Speaker: "BOB", Text: "Yo"},
			},
		},
		{
			name:   "empty script",
			script: "   \n\n",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.script)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseIsRepeatable(t *testing.T) {
	script := "ALICE: One\nBOB: (laughs) Two\nnarration\nALICE: Three"
	first := Parse(script)
	second := Parse(script)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Parse() not repeatable: %#v vs %#v", first, second)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(first))
	}
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	lines := []Line{
		{Speaker: "ALICE", Text: "Hello"},
		{Speaker: "BOB", Text: "Hi"},
	}

	paths, err := WriteFiles(dir, lines)
	if err != nil {
		t.Fatal("WriteFiles:", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(paths))
	}
	if filepath.Base(paths[1]) != "dialogue2_BOB.txt" {
		t.Fatalf("unexpected file name %s", filepath.Base(paths[1]))
	}

	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Hello" {
		t.Fatalf("unexpected content %q", data)
	}
}
