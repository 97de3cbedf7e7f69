package postgres

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

func TestDecodeItems(t *testing.T) {
	items, err := decodeItems([]byte(`[{"name":"Latte","quantity":2},{"name":"Tea","quantity":1}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 || items[0] != (domain.OrderItem{Name: "Latte", Qty: 2}) {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestDecodeItemsMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `oops`},
		{name: "not an array", raw: `{"name":"Latte"}`},
		{name: "missing name", raw: `[{"quantity":2}]`},
		{name: "zero quantity", raw: `[{"name":"Latte","quantity":0}]`},
		{name: "empty payload", raw: ``},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := decodeItems([]byte(tc.raw))
			if !errors.Is(err, domain.ErrMalformedRecord) {
				t.Fatalf("expected ErrMalformedRecord, got %v", err)
			}
			if items != nil {
				t.Fatalf("malformed payload must yield nil items, got %+v", items)
			}
		})
	}
}

func TestEncodeItemsRoundTrip(t *testing.T) {
	raw, err := encodeItems([]domain.OrderItem{{Name: "Cocoa", Qty: 3}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	items, err := decodeItems(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].Qty != 3 {
		t.Fatalf("unexpected round trip result: %+v", items)
	}
}

func TestEncodeItemsEmpty(t *testing.T) {
	raw, err := encodeItems(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("empty items must encode as [], got %s", raw)
	}
}
