package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "plain text unchanged",
			in:   "A service registry for distributed systems.",
			want: "A service registry for distributed systems.",
		},
		{
			name: "strips markdown heading and emphasis",
			in:   "# Consul\n\nConsul is a *multi-network* tool.",
			want: "Consul Consul is a multi-network tool.",
		},
		{
			name: "strips http url",
			in:   "See https://example.com/docs for details.",
			want: "See for details.",
		},
		{
			name: "strips www url",
			in:   "Visit www.example.com today.",
			want: "Visit today.",
		},
		{
			name: "strips code spans and blockquotes",
			in:   "> run `make build` to compile",
			want: "run make build to compile",
		},
		{
			name: "strips underscores and pipes",
			in:   "col_a | col_b",
			want: "col a col b",
		},
		{
			name: "collapses whitespace runs",
			in:   "a  b\t\tc\n\n\nd",
			want: "a b c d",
		},
		{
			name: "trims",
			in:   "   padded   ",
			want: "padded",
		},
		{
			name: "only noise yields empty",
			in:   "### *** ``` https://example.com",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain sentence.",
		"# Heading\nwith *markup* and https://example.com links",
		"   spaced \t out \n text   ",
		"mixed `code` > quote _em_ ~strike~ | table",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
