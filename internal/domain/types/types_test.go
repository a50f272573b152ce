package types

import (
	"encoding/json"
	"testing"
)

func TestParseRole(t *testing.T) {
	tcases := map[string]struct {
		role Role
		ok   bool
	}{
		"candidate":   {RoleCandidate, true},
		"CANDIDATE":   {RoleCandidate, true},
		" Company ":   {RoleCompany, true},
		"":            {RoleNone, false},
		"admin":       {RoleNone, false},
		"candidate\n": {RoleCandidate, true},
	}
	for in, want := range tcases {
		got, ok := ParseRole(in)
		if got != want.role || ok != want.ok {
			t.Errorf("ParseRole(%q) = %q, %v; want %q, %v", in, got, ok, want.role, want.ok)
		}
	}
	if RoleCompany.APIName() != "COMPANY" {
		t.Fatalf("APIName = %q", RoleCompany.APIName())
	}
}

func TestParseID(t *testing.T) {
	tcases := map[string]struct {
		id ID
		ok bool
	}{
		"7":   {7, true},
		" 12": {12, true},
		"0":   {0, false},
		"-3":  {0, false},
		"abc": {0, false},
		"":    {0, false},
	}
	for in, want := range tcases {
		got, ok := ParseID(in)
		if got != want.id || ok != want.ok {
			t.Errorf("ParseID(%q) = %d, %v; want %d, %v", in, got, ok, want.id, want.ok)
		}
	}
}

func TestProfile_DisplayName(t *testing.T) {
	tcases := []struct {
		p    Profile
		want string
	}{
		{Profile{Name: "Jollibee VN", Username: "jollibee"}, "Jollibee VN"},
		{Profile{FirstName: "Alice", LastName: "Nguyen", Username: "alice"}, "Alice Nguyen"},
		{Profile{FirstName: "Alice", Username: "alice"}, "Alice"},
		{Profile{Username: "alice"}, "alice"},
	}
	for _, tc := range tcases {
		if got := tc.p.DisplayName(); got != tc.want {
			t.Errorf("DisplayName(%+v) = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var post struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"25000.00","b":18.5,"c":null}`), &post); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if post.A != "25000.00" || post.B != "18.5" || post.C != "" {
		t.Fatalf("amounts = %+v", post)
	}
	if err := json.Unmarshal([]byte(`{"a":true}`), &post); err == nil {
		t.Fatal("expected error for a boolean amount")
	}
}

func TestSession_Clone(t *testing.T) {
	s := Session{Token: "t", Role: RoleCandidate, Profile: &Profile{Username: "alice"}}
	c := s.Clone()
	c.Profile.Username = "mallory"
	if s.Profile.Username != "alice" {
		t.Fatal("Clone shares the profile")
	}
	if !s.Authenticated() || s.Degraded() {
		t.Fatalf("authenticated=%v degraded=%v", s.Authenticated(), s.Degraded())
	}
	if d := (Session{Token: "t"}); !d.Degraded() {
		t.Fatal("token without profile should be degraded")
	}
}

func TestParams_Clone(t *testing.T) {
	var nilParams Params
	if nilParams.Clone() != nil {
		t.Fatal("nil clone should stay nil")
	}
	p := Params{"jobId": "3"}
	c := p.Clone()
	c["jobId"] = "4"
	if p["jobId"] != "3" {
		t.Fatal("Clone shares the map")
	}
}
