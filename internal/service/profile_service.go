package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"hanmal/backend/internal/logger"
	"hanmal/backend/internal/model"
	"hanmal/backend/internal/repository"
	"hanmal/backend/internal/service/translation"
)

// Profile ids with fixed pipeline roles.
const (
	// DefaultProfileID is used when a request names no profile or an
	// unknown one.
	DefaultProfileID = "natural"
	// LiteralProfileID biases back-translation toward a neutral baseline.
	LiteralProfileID = "direct"
)

// builtinProfiles ship with the assistant. They are immutable and cannot be
// deleted; CanDelete is left false.
var builtinProfiles = []model.TranslationProfile{
	{
		ID:          "natural",
		Name:        "Natural",
		Description: "Fluent, natural phrasing that a native speaker would actually use",
		Rules: []string{
			"Prefer everyday vocabulary over textbook phrasing",
			"Keep the tone polite but not stiff",
			"Restructure sentences freely when it reads better",
		},
		IsDefault: true,
	},
	{
		ID:          "parent-talk",
		Name:        "Parent Talk",
		Description: "Warm, respectful tone for messaging older family members",
		Rules: []string{
			"Use respectful speech levels (존댓말) in Korean",
			"Soften requests and disagreements",
			"Add warmth without changing the meaning",
		},
	},
	{
		ID:          "direct",
		Name:        "Direct",
		Description: "Literal translation that stays as close to the source as possible",
		Rules: []string{
			"Preserve the original sentence structure where grammatical",
			"Do not add or drop information",
			"Avoid idiomatic substitutions",
		},
	},
}

// formalityTable maps built-in profile ids to the formality dial of the
// formality-aware backend. This is fixed policy, not inferred from rules;
// custom profiles always get the default level.
var formalityTable = map[string]translation.Formality{
	"natural":     translation.FormalityMore,
	"parent-talk": translation.FormalityDefault,
	"direct":      translation.FormalityLess,
}

// EffectiveProfile is a profile resolved for one translation request, with
// per-request custom rules merged in.
type EffectiveProfile struct {
	Profile     model.TranslationProfile
	Rules       []string // profile rules plus custom rules, in order
	CustomRules []string // the per-request rules only
	Formality   translation.Formality
}

// Style converts the resolved profile into provider parameters.
func (p EffectiveProfile) Style() translation.Style {
	return translation.Style{
		ProfileName: p.Profile.Name,
		Description: p.Profile.Description,
		Rules:       p.Rules,
		Formality:   p.Formality,
	}
}

// ProfileService manages built-in and custom translation profiles and
// resolves them into generation parameters.
type ProfileService interface {
	List(ctx context.Context) ([]model.TranslationProfile, error)
	Get(ctx context.Context, id string) (*model.TranslationProfile, error)
	// Save creates or updates a custom profile, assigning an id when
	// absent. Built-in ids are rejected.
	Save(ctx context.Context, profile model.TranslationProfile) (*model.TranslationProfile, error)
	// Delete removes a custom profile. Built-ins always fail with
	// ErrCannotDelete; unknown ids fail with ErrNotFound.
	Delete(ctx context.Context, id string) error
	// Resolve maps a profile id plus per-request custom rules to concrete
	// generation parameters. Unknown ids fall back to the default profile.
	Resolve(ctx context.Context, id string, customRules []string) EffectiveProfile
}

type profileService struct {
	repo repository.ProfileRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) List(ctx context.Context) ([]model.TranslationProfile, error) {
	custom, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	out := make([]model.TranslationProfile, 0, len(builtinProfiles)+len(custom))
	out = append(out, builtinProfiles...)
	for _, p := range custom {
		p.CanDelete = true
		out = append(out, p)
	}
	return out, nil
}

func (s *profileService) Get(ctx context.Context, id string) (*model.TranslationProfile, error) {
	if p := builtin(id); p != nil {
		return p, nil
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	p.CanDelete = true
	return p, nil
}

func (s *profileService) Save(ctx context.Context, profile model.TranslationProfile) (*model.TranslationProfile, error) {
	if strings.TrimSpace(profile.Name) == "" || strings.TrimSpace(profile.Description) == "" {
		return nil, fmt.Errorf("%w: name and description are required", ErrInvalid)
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	} else if builtin(profile.ID) != nil {
		return nil, fmt.Errorf("%w: profile id %q is built-in", ErrInvalid, profile.ID)
	}
	profile.IsDefault = false
	profile.CanDelete = true

	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	logger.Info("profile saved",
		"module", "service", "action", "save", "resource", "profile", "result", "ok",
		"profile_id", profile.ID)
	return &profile, nil
}

func (s *profileService) Delete(ctx context.Context, id string) error {
	if builtin(id) != nil {
		return ErrCannotDelete
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	logger.Info("profile deleted",
		"module", "service", "action", "delete", "resource", "profile", "result", "ok",
		"profile_id", id)
	return nil
}

func (s *profileService) Resolve(ctx context.Context, id string, customRules []string) EffectiveProfile {
	if id == "" {
		id = DefaultProfileID
	}
	profile, err := s.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("profile lookup failed, falling back to default",
				"module", "service", "action", "fetch", "resource", "profile", "result", "fallback",
				"profile_id", id, "error", err)
		}
		profile = builtin(DefaultProfileID)
	}

	rules := append([]string(nil), profile.Rules...)
	rules = append(rules, customRules...)

	formality, ok := formalityTable[profile.ID]
	if !ok {
		formality = translation.FormalityDefault
	}

	return EffectiveProfile{
		Profile:     *profile,
		Rules:       rules,
		CustomRules: append([]string(nil), customRules...),
		Formality:   formality,
	}
}

// builtin returns a copy of the built-in profile with the given id, or nil.
// Copies keep the shipped rule sets immutable.
func builtin(id string) *model.TranslationProfile {
	for _, p := range builtinProfiles {
		if p.ID == id {
			cp := p
			cp.Rules = append([]string(nil), p.Rules...)
			return &cp
		}
	}
	return nil
}
