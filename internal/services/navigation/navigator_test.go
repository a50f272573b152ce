package navigation_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"ptjobs/internal/domain"
	nav "ptjobs/internal/services/navigation"
)

func TestTopology_RoleGating(t *testing.T) {
	topo := nav.Default()

	cases := []struct {
		role      domain.Role
		tabs      []domain.Destination
		forbidden []domain.Destination
	}{
		{
			role:      domain.RoleCandidate,
			tabs:      []domain.Destination{nav.Home, nav.Jobs, nav.Companies, nav.Chat, nav.Profile},
			forbidden: []domain.Destination{nav.Posts, nav.Login},
		},
		{
			role:      domain.RoleCompany,
			tabs:      []domain.Destination{nav.Home, nav.Posts, nav.Chat, nav.Profile},
			forbidden: []domain.Destination{nav.Jobs, nav.Companies, nav.Register},
		},
		{
			role:      domain.RoleNone,
			tabs:      []domain.Destination{nav.Login, nav.Register},
			forbidden: []domain.Destination{nav.Home, nav.JobDetail, nav.Notifications},
		},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			if diff := cmp.Diff(tc.tabs, topo.Tabs(tc.role)); diff != "" {
				t.Fatalf("tabs mismatch (-want +got):\n%s", diff)
			}
			if got := topo.Root(tc.role); got != tc.tabs[0] {
				t.Fatalf("root = %s, want %s", got, tc.tabs[0])
			}
			for _, d := range tc.forbidden {
				if topo.Reachable(tc.role, d) {
					t.Fatalf("%s must not reach %s", tc.role, d)
				}
			}
			if tc.role.Valid() {
				for _, d := range topo.Shared() {
					if !topo.Reachable(tc.role, d) {
						t.Fatalf("%s must reach shared %s", tc.role, d)
					}
				}
			}
		})
	}
}

func TestTopology_Params(t *testing.T) {
	topo := nav.Default()

	if diff := cmp.Diff([]string{nav.ParamJobID}, topo.RequiredParams(nav.JobDetail)); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if got := topo.RequiredParams(nav.Notifications); len(got) != 0 {
		t.Fatalf("Notifications requires %v", got)
	}
	if got := topo.MissingParams(nav.CompanyDetail, domain.Params{nav.ParamCompanyID: ""}); !slices.Equal(got, []string{nav.ParamCompanyID}) {
		t.Fatalf("missing = %v", got)
	}
	if got := topo.MissingParams(nav.CompanyDetail, domain.Params{nav.ParamCompanyID: "4"}); len(got) != 0 {
		t.Fatalf("missing = %v, want none", got)
	}
	if got := topo.OptionalParams(nav.Login); !slices.Equal(got, []string{nav.ParamNext}) {
		t.Fatalf("optional = %v", got)
	}
}

func TestNavigator_BackStack(t *testing.T) {
	n := nav.NewNavigator(nil, domain.RoleCandidate, zerolog.Nop())
	root := n.Current()

	if err := n.NavigateTo(nav.JobDetail, domain.Params{nav.ParamJobID: "1"}); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if got := n.Current(); got.Destination != nav.JobDetail || got.Params[nav.ParamJobID] != "1" {
		t.Fatalf("current = %+v", got)
	}
	if n.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", n.Depth())
	}

	if !n.GoBack() {
		t.Fatal("GoBack from detail returned false")
	}
	if diff := cmp.Diff(root, n.Current()); diff != "" {
		t.Fatalf("not back at root (-want +got):\n%s", diff)
	}
	for i := 0; i < 3; i++ {
		if n.GoBack() {
			t.Fatal("GoBack at root returned true")
		}
	}
	if n.Depth() != 0 || n.Current().Destination != nav.Home {
		t.Fatalf("root underflow: depth=%d current=%s", n.Depth(), n.Current().Destination)
	}
}

func TestNavigator_Rejections(t *testing.T) {
	n := nav.NewNavigator(nil, domain.RoleCompany, zerolog.Nop())

	if err := n.NavigateTo("Settings", nil); !errors.Is(err, nav.ErrUnknownDestination) {
		t.Fatalf("unknown: got %v", err)
	}
	if err := n.NavigateTo(nav.Jobs, nil); !errors.Is(err, nav.ErrNotPermitted) {
		t.Fatalf("company to Jobs: got %v", err)
	}
	if err := n.SelectTab(nav.Notifications); !errors.Is(err, nav.ErrNotPermitted) {
		t.Fatalf("shared screen as tab: got %v", err)
	}
	if n.Depth() != 0 || n.Current().Destination != nav.Home {
		t.Fatal("rejected navigation changed state")
	}
}

func TestNavigator_MissingParamsAccepted(t *testing.T) {
	n := nav.NewNavigator(nil, domain.RoleCandidate, zerolog.Nop())
	if err := n.NavigateTo(nav.CompanyDetail, nil); err != nil {
		t.Fatalf("missing params must be accepted: %v", err)
	}
	if n.Current().Destination != nav.CompanyDetail {
		t.Fatalf("current = %s", n.Current().Destination)
	}
}

func TestNavigator_SelectTabClearsStack(t *testing.T) {
	n := nav.NewNavigator(nil, domain.RoleCandidate, zerolog.Nop())
	_ = n.NavigateTo(nav.JobDetail, domain.Params{nav.ParamJobID: "1"})
	_ = n.NavigateTo(nav.CompanyDetail, domain.Params{nav.ParamCompanyID: "2"})

	if err := n.SelectTab(nav.Companies); err != nil {
		t.Fatalf("select tab: %v", err)
	}
	want := []domain.Node{{Destination: nav.Companies}}
	if diff := cmp.Diff(want, n.History()); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestNavigator_HistoryAndParamIsolation(t *testing.T) {
	n := nav.NewNavigator(nil, domain.RoleCandidate, zerolog.Nop())
	p := domain.Params{nav.ParamJobID: "5"}
	_ = n.NavigateTo(nav.JobDetail, p)
	p[nav.ParamJobID] = "6"

	want := []domain.Node{
		{Destination: nav.Home},
		{Destination: nav.JobDetail, Params: domain.Params{nav.ParamJobID: "5"}},
	}
	if diff := cmp.Diff(want, n.History()); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestNavigator_Reset(t *testing.T) {
	n := nav.NewNavigator(nil, domain.RoleNone, zerolog.Nop())
	if n.Current().Destination != nav.Login {
		t.Fatalf("unauthenticated root = %s", n.Current().Destination)
	}
	if err := n.NavigateTo(nav.Register, nil); err != nil {
		t.Fatalf("navigate: %v", err)
	}

	n.Reset(domain.RoleCompany)
	if n.Role() != domain.RoleCompany || n.Current().Destination != nav.Home || n.Depth() != 0 {
		t.Fatalf("after reset: role=%s current=%s depth=%d", n.Role(), n.Current().Destination, n.Depth())
	}
	if err := n.SelectTab(nav.Posts); err != nil {
		t.Fatalf("company Posts tab: %v", err)
	}
}
