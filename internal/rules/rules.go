// Package rules holds the heuristic rule tables the pipeline stages run on.
// Every lexicon is data, not code: a compiled-in default document covers the
// common case, and a YAML file can replace it wholesale so heuristics stay
// independently testable and tunable.
package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SkillRule maps one canonical skill tag to the phrases that imply it.
type SkillRule struct {
	Skill    string   `yaml:"skill"`
	Keywords []string `yaml:"keywords"`
}

// PriorityRules groups tier lexicons. A hit in a higher tier always wins.
type PriorityRules struct {
	Critical []string `yaml:"critical"`
	High     []string `yaml:"high"`
	Medium   []string `yaml:"medium"`
	Low      []string `yaml:"low"`
}

// Set is the full rule document consumed by the pipeline. Slice order is
// the deterministic match order.
type Set struct {
	Fillers           []string      `yaml:"fillers"`
	Disposable        []string      `yaml:"disposable"`
	Prefixes          []string      `yaml:"prefixes"`
	ActionVerbs       []string      `yaml:"action_verbs"`
	ObligationPhrases []string      `yaml:"obligation_phrases"`
	AddressPhrases    []string      `yaml:"address_phrases"`
	NonTaskHints      []string      `yaml:"non_task_hints"`
	DeadlineCues      []string      `yaml:"deadline_cues"`
	DependencyCues    []string      `yaml:"dependency_cues"`
	TechnicalPhrases  []string      `yaml:"technical_phrases"`
	Priority          PriorityRules `yaml:"priority"`
	Skills            []SkillRule   `yaml:"skills"`
}

const defaultRulesYAML = `# meetmind heuristic rule tables
fillers: [um, uh, hmm, er, ah, uhm]

disposable:
  - okay
  - ok
  - yeah
  - yep
  - right
  - sure
  - cool
  - alright
  - thanks
  - thank you
  - got it
  - sounds good
  - makes sense
  - mhm
  - uh-huh

prefixes:
  - so i think
  - i think
  - okay so
  - ok so
  - so
  - well
  - basically
  - actually
  - you know
  - alright so

action_verbs:
  - fix
  - update
  - design
  - implement
  - create
  - write
  - test
  - refactor
  - review
  - deploy
  - configure
  - set up
  - setup
  - optimize
  - add
  - remove
  - check
  - investigate
  - analyze
  - resolve
  - handle
  - document
  - migrate

obligation_phrases:
  - need to
  - needs to
  - should
  - must
  - will
  - have to
  - has to
  - let's
  - lets
  - plan to
  - make sure to
  - ensure that

address_phrases:
  - can you
  - could you
  - will you
  - would you
  - please

non_task_hints:
  - we discussed
  - we talked about
  - we already
  - as we know
  - remember that

deadline_cues: [by, due, deadline, before]

dependency_cues:
  - depends on
  - dependent on
  - after
  - once
  - blocked by
  - waiting on
  - waiting for
  - first
  - then

technical_phrases:
  - login bug
  - login issue
  - home page
  - landing page
  - dashboard
  - api response
  - database migration
  - null pointer
  - timeout error
  - performance issue
  - memory leak
  - race condition

priority:
  critical:
    - critical
    - urgent
    - emergency
    - asap
    - as soon as possible
    - immediately
    - right away
    - blocking
    - blocker
    - production down
    - outage
  high:
    - important
    - high priority
    - soon
    - must have
    - required
    - essential
    - release blocker
  medium:
    - normal
    - standard
    - medium priority
  low:
    - whenever
    - no rush
    - low priority
    - eventually
    - someday
    - backlog
    - nice to have
    - if time permits

skills:
  - skill: frontend
    keywords: [frontend, ui, user interface, react, javascript, css, layout, screen]
  - skill: backend
    keywords: [backend, server, api, endpoint, business logic, node]
  - skill: database
    keywords: [database, db, query, sql, migration, schema, mongo]
  - skill: auth
    keywords: [login, auth, authentication, signup, password, session, token]
  - skill: testing
    keywords: [test, testing, qa, regression, coverage, review]
  - skill: devops
    keywords: [deploy, deployment, pipeline, docker, kubernetes, ci, infrastructure]
  - skill: design
    keywords: [design, figma, wireframe, prototype, mockup, ux]
  - skill: docs
    keywords: [document, documentation, readme, changelog, writeup]
`

// Default returns the compiled-in rule set.
func Default() *Set {
	set, err := Parse([]byte(defaultRulesYAML))
	if err != nil {
		// The default document is compile-time data; failing to parse it is
		// a programming error, not a runtime condition.
		panic(fmt.Sprintf("rules: default tables invalid: %v", err))
	}
	return set
}

// Load reads a rule document from a YAML file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: read tables: %w", err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rules: %s: %w", path, err)
	}
	return set, nil
}

// Parse decodes and validates a rule document.
func Parse(data []byte) (*Set, error) {
	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse tables: %w", err)
	}
	for i, rule := range set.Skills {
		if strings.TrimSpace(rule.Skill) == "" {
			return nil, fmt.Errorf("skill rule %d has no skill tag", i+1)
		}
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("skill rule %s has no keywords", rule.Skill)
		}
	}
	if len(set.DeadlineCues) == 0 {
		return nil, fmt.Errorf("deadline_cues must not be empty")
	}
	return &set, nil
}
