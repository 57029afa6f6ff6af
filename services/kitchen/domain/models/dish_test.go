package models

import "testing"

func TestDeliver(t *testing.T) {
	d := NewDish("Sesame chicken")
	got := Deliver(d)

	if !got.Delivered {
		t.Fatal("expected delivered dish")
	}
	if d.Delivered {
		t.Fatal("Deliver must not modify its argument")
	}
	if got.Description != d.Description {
		t.Fatalf("description changed: %q", got.Description)
	}
}

func TestMenu(t *testing.T) {
	if len(Menu) != 3 {
		t.Fatalf("expected 3 dishes, got %d", len(Menu))
	}
	for _, d := range Menu {
		if d.Delivered {
			t.Errorf("%s should start undelivered", d.Description)
		}
	}
}
