package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTablesAreUsable(t *testing.T) {
	rs := Default()
	if len(rs.ActionVerbs) == 0 || len(rs.ObligationPhrases) == 0 {
		t.Fatalf("default extraction lexicons are empty")
	}
	if !contains(rs.ActionVerbs, "fix") {
		t.Fatalf("default action verbs missing %q", "fix")
	}
	if !contains(rs.Priority.Critical, "urgent") {
		t.Fatalf("default critical tier missing %q", "urgent")
	}
	if len(rs.DeadlineCues) == 0 || len(rs.DependencyCues) == 0 {
		t.Fatalf("default cue lexicons are empty")
	}
	if len(rs.Skills) == 0 {
		t.Fatalf("default skill taxonomy is empty")
	}
}

func TestParseRejectsSkillRuleWithoutTag(t *testing.T) {
	doc := `
deadline_cues: [by]
skills:
  - skill: ""
    keywords: [login]
`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatalf("expected error for skill rule without tag")
	}
}

func TestParseRejectsSkillRuleWithoutKeywords(t *testing.T) {
	doc := `
deadline_cues: [by]
skills:
  - skill: auth
`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatalf("expected error for skill rule without keywords")
	}
	if !strings.Contains(err.Error(), "auth") {
		t.Fatalf("error %q does not name the rule", err)
	}
}

func TestParseRejectsEmptyDeadlineCues(t *testing.T) {
	if _, err := Parse([]byte("fillers: [um]")); err == nil {
		t.Fatalf("expected error for missing deadline cues")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	doc := `
action_verbs: [ship]
deadline_cues: [by]
skills:
  - skill: release
    keywords: [ship, rollout]
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}
	rs, err := Load(path)
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	if len(rs.ActionVerbs) != 1 || rs.ActionVerbs[0] != "ship" {
		t.Fatalf("action verbs = %v, want [ship]", rs.ActionVerbs)
	}
	if len(rs.Skills) != 1 || rs.Skills[0].Skill != "release" {
		t.Fatalf("skills = %+v, want one release rule", rs.Skills)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
