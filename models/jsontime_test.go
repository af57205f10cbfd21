package models

import (
	"encoding/json"
	"testing"
)

func TestJSONTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string // RFC3339 of expected value
		wantErr bool
	}{
		{"rfc3339", `"2024-05-16T15:32:25Z"`, "2024-05-16T15:32:25Z", false},
		{"rfc3339 with offset", `"2024-05-16T15:32:25+07:00"`, "2024-05-16T15:32:25+07:00", false},
		{"date only", `"2024-05-16"`, "2024-05-16T00:00:00Z", false},
		{"no timezone", `"2024-05-16T15:32:25"`, "2024-05-16T15:32:25Z", false},
		{"garbage", `"yesterday"`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var jt JSONTime
			err := json.Unmarshal([]byte(tt.input), &jt)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			got := jt.Time().Format("2006-01-02T15:04:05Z07:00")
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestJSONTimeMarshalRoundTrip(t *testing.T) {
	var jt JSONTime
	if err := json.Unmarshal([]byte(`"2024-05-16T15:32:25Z"`), &jt); err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(jt)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"2024-05-16T15:32:25Z"` {
		t.Errorf("got %s", out)
	}
}
