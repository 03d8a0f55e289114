package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCursorEncodeDecodeRoundTrip(t *testing.T) {
	orig := Cursor{
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 45, 123_000_000, time.UTC),
		ID:        uuid.New(),
	}

	decoded, err := DecodeCursor(orig.Encode())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !decoded.CreatedAt.Equal(orig.CreatedAt) {
		t.Fatalf("created_at mismatch: %v vs %v", decoded.CreatedAt, orig.CreatedAt)
	}
	if decoded.ID != orig.ID {
		t.Fatalf("id mismatch: %v vs %v", decoded.ID, orig.ID)
	}
}

func TestDecodeCursorMalformed(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"notanumber_" + uuid.New().String(),
		"1717243845123",
		"1717243845123_not-a-uuid",
		"_" + uuid.New().String(),
	}
	for _, raw := range cases {
		if _, err := DecodeCursor(raw); err == nil {
			t.Fatalf("expected error for cursor %q", raw)
		}
	}
}

func TestCursorContains(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := uuid.MustParse("80000000-0000-0000-0000-000000000000")
	c := Cursor{CreatedAt: at, ID: id}

	if !c.Contains(at.Add(-time.Millisecond), uuid.New()) {
		t.Fatalf("older timestamp must be after the cursor")
	}
	if c.Contains(at.Add(time.Millisecond), uuid.New()) {
		t.Fatalf("newer timestamp must not be after the cursor")
	}

	smaller := uuid.MustParse("70000000-0000-0000-0000-000000000000")
	larger := uuid.MustParse("90000000-0000-0000-0000-000000000000")
	if !c.Contains(at, smaller) {
		t.Fatalf("same timestamp with smaller id must be after the cursor")
	}
	if c.Contains(at, larger) {
		t.Fatalf("same timestamp with larger id must not be after the cursor")
	}
	if c.Contains(at, id) {
		t.Fatalf("the cursor row itself must be excluded")
	}
}
