package model

import "testing"

func TestParseScoringMode(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    ScoringMode
		wantErr bool
	}{
		"ppr":        {input: "ppr", want: SCORING_PPR},
		"upper case": {input: "PPR", want: SCORING_PPR},
		"half":       {input: "half", want: SCORING_HALF},
		"standard":   {input: " Standard ", want: SCORING_STANDARD},
		"empty":      {input: "", wantErr: true},
		"unknown":    {input: "half-ppr", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseScoringMode(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected: %s, got: %s", tc.want, got)
			}
		})
	}
}
