package review

import "testing"

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name    string
		current string
		remote  string
		want    VersionComparison
		wantErr bool
	}{
		{name: "same", current: "0.6.5", remote: "0.6.5", want: SameVersion},
		{name: "patch behind", current: "0.6.4", remote: "0.6.5", want: UpdateRecommended},
		{name: "patch ahead", current: "0.6.6", remote: "0.6.5", want: UpdateRecommended},
		{name: "minor mismatch", current: "0.5.5", remote: "0.6.5", want: Incompatible},
		{name: "major mismatch", current: "1.6.5", remote: "0.6.5", want: Incompatible},
		{name: "malformed current", current: "0.6", remote: "0.6.5", wantErr: true},
		{name: "malformed remote", current: "0.6.5", remote: "lol", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompareVersions(tt.current, tt.remote)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CompareVersions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("CompareVersions() = %v, want %v", got, tt.want)
			}
		})
	}
}
