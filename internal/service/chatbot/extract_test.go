package chatbot

import "testing"

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
		wantOK  bool
	}{
		{
			name:    "weather in city",
			message: "weather in Tokyo",
			want:    "Tokyo",
			wantOK:  true,
		},
		{
			name:    "question mark terminator",
			message: "what's the weather in Paris?",
			want:    "Paris",
			wantOK:  true,
		},
		{
			name:    "how is phrasing",
			message: "how is Berlin today",
			want:    "Berlin",
			wantOK:  true,
		},
		{
			name:    "city weather suffix",
			message: "London weather?",
			want:    "London",
			wantOK:  true,
		},
		{
			name:    "multi word city",
			message: "weather in New York",
			want:    "New York",
			wantOK:  true,
		},
		{
			name:    "tell me about phrasing",
			message: "tell me about the weather in Madrid",
			want:    "Madrid",
			wantOK:  true,
		},
		{
			name:    "stopword capture rejected",
			message: "how is it today",
			wantOK:  false,
		},
		{
			name:    "short capture rejected",
			message: "weather in NY",
			wantOK:  false,
		},
		{
			name:    "no location mention",
			message: "should I bring an umbrella?",
			wantOK:  false,
		},
		{
			name:    "clothing question is not a location",
			message: "what should I wear?",
			wantOK:  false,
		},
		{
			name:    "word final at does not anchor",
			message: "what should I wear tomorrow?",
			wantOK:  false,
		},
		{
			name:    "rain does not anchor in",
			message: "will it rain on my parade?",
			wantOK:  false,
		},
		{
			name:    "generic adjective rejected",
			message: "the weather is nice today",
			wantOK:  false,
		},
		{
			name:    "empty message",
			message: "",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractLocation(tt.message)
			if ok != tt.wantOK {
				t.Fatalf("ExtractLocation(%q) ok = %v, want %v (got %q)", tt.message, ok, tt.wantOK, got)
			}
			if ok && got != tt.want {
				t.Errorf("ExtractLocation(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}
