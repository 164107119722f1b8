package changefeed

import (
	"testing"
	"time"

	"github.com/fabworks/caseboard/internal/domain"
	"github.com/fabworks/caseboard/internal/realtime"
)

func TestDecodePayload_Insert(t *testing.T) {
	t.Parallel()

	raw := `{
		"op": "INSERT",
		"new": {
			"id": "3e2b34a4-5f06-4a0e-9dc7-7a2f1a1c9b01",
			"number": "1001",
			"department": "digital",
			"due": "2024-03-01",
			"priority": true,
			"completed": false,
			"archived": false,
			"archived_at": null,
			"tags": ["rush", "stage-qc"],
			"created_at": "2024-03-01T10:00:00.123456+00:00",
			"updated_at": "2024-03-01T10:00:00.123456+00:00"
		}
	}`

	n, err := decodePayload(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n.Kind != realtime.KindInsert {
		t.Errorf("kind: %v", n.Kind)
	}
	if n.New == nil || n.Old != nil {
		t.Fatalf("rows: new=%v old=%v", n.New, n.Old)
	}
	if n.New.Number != "1001" || n.New.Department != domain.DepartmentDigital {
		t.Errorf("case: %+v", n.New)
	}
	if !n.New.Due.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("due: %v", n.New.Due)
	}
	if !n.New.Modifiers.Rush {
		t.Error("rush tag not decoded")
	}
	if n.New.Modifiers.Stage == nil || *n.New.Modifiers.Stage != domain.StageQC {
		t.Errorf("stage tag not decoded: %+v", n.New.Modifiers.Stage)
	}
}

func TestDecodePayload_Delete(t *testing.T) {
	t.Parallel()

	raw := `{
		"op": "DELETE",
		"old": {
			"id": "3e2b34a4-5f06-4a0e-9dc7-7a2f1a1c9b02",
			"number": "1002",
			"department": "metal",
			"due": "2024-03-02",
			"tags": [],
			"created_at": "2024-03-01T10:00:00+00:00",
			"updated_at": "2024-03-01T10:00:00+00:00"
		}
	}`

	n, err := decodePayload(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n.Kind != realtime.KindDelete {
		t.Errorf("kind: %v", n.Kind)
	}
	if n.Old == nil || n.New != nil {
		t.Fatalf("rows: new=%v old=%v", n.New, n.Old)
	}
	if n.Old.Number != "1002" {
		t.Errorf("old case: %+v", n.Old)
	}
}

func TestDecodePayload_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{`},
		{"unknown op", `{"op": "TRUNCATE"}`},
		{"bad due", `{"op": "INSERT", "new": {"id": "3e2b34a4-5f06-4a0e-9dc7-7a2f1a1c9b03", "due": "yesterday", "created_at": "2024-03-01T10:00:00+00:00", "updated_at": "2024-03-01T10:00:00+00:00"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := decodePayload(tt.raw); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
