package jsonutil

import "testing"

type roomFixture struct {
	Type   string  `json:"type"`
	Appeal float64 `json:"appeal"`
}

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "json fence",
			in:   "```json\n{\"type\":\"kitchen\"}\n```",
			want: "{\"type\":\"kitchen\"}",
		},
		{
			name: "bare fence",
			in:   "```\n{\"type\":\"kitchen\"}\n```",
			want: "{\"type\":\"kitchen\"}",
		},
		{
			name: "no fence",
			in:   "{\"type\":\"kitchen\"}",
			want: "{\"type\":\"kitchen\"}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkdownFences(tt.in); got != tt.want {
				t.Errorf("StripMarkdownFences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseJSON_ProseWrapped(t *testing.T) {
	raw := "Here is the analysis you asked for:\n{\"type\": \"exterior\", \"appeal\": 8.5}\nLet me know if you need more."
	got, err := ParseJSON[roomFixture](raw)
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if got.Type != "exterior" || got.Appeal != 8.5 {
		t.Errorf("ParseJSON() = %+v, want {exterior 8.5}", got)
	}
}

func TestParseJSON_Array(t *testing.T) {
	raw := "```json\n[{\"type\":\"kitchen\",\"appeal\":9}]\n```"
	got, err := ParseJSON[[]roomFixture](raw)
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if len(got) != 1 || got[0].Type != "kitchen" {
		t.Errorf("ParseJSON() = %+v, want one kitchen entry", got)
	}
}

func TestParseJSON_NoJSON(t *testing.T) {
	if _, err := ParseJSON[roomFixture]("the model refused to answer"); err == nil {
		t.Error("ParseJSON() expected error for non-JSON input")
	}
}
