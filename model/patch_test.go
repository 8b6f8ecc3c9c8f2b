package model

import (
	"encoding/json"
	"testing"
)

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	var p ProfilePatch
	body := `{"first_name":"Ada","last_name":null,"bio":""}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if v, ok := p.FirstName.Get(); !ok || v != "Ada" {
		t.Fatalf("first_name: got=%q ok=%v", v, ok)
	}
	if !p.LastName.Set || !p.LastName.Null {
		t.Fatalf("last_name should be present and null: %+v", p.LastName)
	}
	if _, ok := p.LastName.Get(); ok {
		t.Fatalf("null must not count as a value")
	}
	if v, ok := p.Bio.Get(); !ok || v != "" {
		t.Fatalf("empty string is an explicit value: got=%q ok=%v", v, ok)
	}
	if p.Address.Set {
		t.Fatalf("address was absent")
	}
}

func TestProfilePatchApply(t *testing.T) {
	base := User{FirstName: "Ada", LastName: "Lovelace", Bio: "math", Address: "London"}

	t.Run("all null leaves user unchanged", func(t *testing.T) {
		u := base
		var p ProfilePatch
		body := `{"first_name":null,"last_name":null,"mobile_number":null,"address":null,"bio":null,"highest_education":null}`
		if err := json.Unmarshal([]byte(body), &p); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		p.Apply(&u)
		if u.FirstName != base.FirstName || u.LastName != base.LastName || u.Bio != base.Bio || u.Address != base.Address {
			t.Fatalf("user mutated: %+v", u)
		}
	})

	t.Run("values overwrite and repeat is idempotent", func(t *testing.T) {
		u := base
		p := ProfilePatch{Bio: Some("engines"), Address: Some("")}
		p.Apply(&u)
		first := u
		p.Apply(&u)
		if u.Bio != "engines" || u.Address != "" {
			t.Fatalf("unexpected user: %+v", u)
		}
		if u.FirstName != first.FirstName || u.Bio != first.Bio || u.Address != first.Address {
			t.Fatalf("second apply changed state: %+v vs %+v", u, first)
		}
	})
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole("mentor"); !ok || r != RoleMentor {
		t.Fatalf("got=%q ok=%v", r, ok)
	}
	if _, ok := ParseRole("instructor"); ok {
		t.Fatalf("unknown role accepted")
	}
	if !RoleAdmin.Valid() || Role("root").Valid() {
		t.Fatalf("Valid misbehaves")
	}
}
