package skill

import (
	"reflect"
	"testing"

	"github.com/Mitesh6440/MeetMind/internal/rules"
	"github.com/Mitesh6440/MeetMind/internal/task"
)

func TestMatchFromDescription(t *testing.T) {
	m := New(rules.Default())
	out := m.Match([]task.Task{{ID: 1, Description: "Fix the login bug"}})
	if got := out[0].RequiredSkills; !reflect.DeepEqual(got, []string{"auth"}) {
		t.Fatalf("skills = %v, want [auth]", got)
	}
}

func TestMatchUsesTechnicalTerms(t *testing.T) {
	m := New(rules.Default())
	out := m.Match([]task.Task{{
		ID:             1,
		Description:    "Clean up the slow queries",
		TechnicalTerms: []string{"database migration"},
	}})
	if got := out[0].RequiredSkills; !reflect.DeepEqual(got, []string{"database"}) {
		t.Fatalf("skills = %v, want [database]", got)
	}
}

func TestMatchEmitsSkillsInTaxonomyOrder(t *testing.T) {
	m := New(rules.Default())
	out := m.Match([]task.Task{{ID: 1, Description: "Test the api endpoint"}})
	if got := out[0].RequiredSkills; !reflect.DeepEqual(got, []string{"backend", "testing"}) {
		t.Fatalf("skills = %v, want [backend testing]", got)
	}
}

func TestMatchRequiresWordBoundaries(t *testing.T) {
	m := New(rules.Default())
	// "apiary" must not count as "api".
	out := m.Match([]task.Task{{ID: 1, Description: "Paint the apiary fence"}})
	if got := out[0].RequiredSkills; len(got) != 0 {
		t.Fatalf("skills = %v, want none", got)
	}
}

func TestMatchDoesNotMutateInput(t *testing.T) {
	m := New(rules.Default())
	in := []task.Task{{ID: 1, Description: "Fix the login bug"}}
	m.Match(in)
	if in[0].RequiredSkills != nil {
		t.Fatalf("Match mutated its input: %v", in[0].RequiredSkills)
	}
}
