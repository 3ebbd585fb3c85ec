package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/FEgor04/moretech-hack/internal/util"
	"github.com/tidwall/gjson"
)

// SkillMatch partitions vacancy skill requirements by whether the candidate
// satisfies them. Entries are always verbatim strings from the vacancy list,
// and the two slices never overlap.
type SkillMatch struct {
	Matching   []string `json:"matching"`
	Unmatching []string `json:"unmatching"`
}

type SkillsServiceInterface interface {
	Match(ctx context.Context, candidateSkills, vacancySkills []string) SkillMatch
}

type SkillsService struct {
	chat GigaChatServiceInterface
}

func NewSkillsService(chat GigaChatServiceInterface) *SkillsService {
	return &SkillsService{chat: chat}
}

// Match asks the LLM which vacancy skills the candidate satisfies. Fails
// closed: any error counts every vacancy skill as unmatched.
func (s *SkillsService) Match(ctx context.Context, candidateSkills, vacancySkills []string) SkillMatch {
	if len(vacancySkills) == 0 {
		return SkillMatch{Matching: []string{}, Unmatching: []string{}}
	}

	failed := SkillMatch{Matching: []string{}, Unmatching: append([]string{}, vacancySkills...)}

	messages, err := buildSkillsPrompt(candidateSkills, vacancySkills)
	if err != nil {
		log.Printf("Skills analysis: failed to build prompt: %v", err)
		return failed
	}

	res, err := s.chat.Chat(ctx, messages, ChatOptions{
		Temperature:  0,
		MaxTokens:    300,
		DisableTools: true,
	})
	if err != nil {
		log.Printf("Skills analysis via GigaChat failed: %v", err)
		return failed
	}

	payload, ok := util.ExtractJSONObject(res.Text)
	if !ok {
		log.Printf("Skills analysis: no JSON object in response")
		return failed
	}

	matching := sanitizeSkills(gjson.Get(payload, "matching"), vacancySkills)
	unmatching := sanitizeSkills(gjson.Get(payload, "unmatching"), vacancySkills)

	// The model often misses alternatives inside a single requirement
	// ("Go или Python"), so re-check those heuristically.
	for _, v := range matchAlternatives(vacancySkills, candidateSkills) {
		if !containsFold(matching, v) {
			matching = append(matching, v)
		}
	}

	matchedSet := make(map[string]bool, len(matching))
	for _, m := range matching {
		matchedSet[normalizeSkill(m)] = true
	}

	// Drop anything the model placed in both lists, and derive unmatching
	// from the vacancy list when the partition is incomplete.
	derived := make([]string, 0, len(vacancySkills))
	for _, v := range vacancySkills {
		if !matchedSet[normalizeSkill(v)] {
			derived = append(derived, v)
		}
	}
	if len(unmatching) == 0 {
		unmatching = derived
	} else {
		filtered := unmatching[:0]
		for _, u := range unmatching {
			if !matchedSet[normalizeSkill(u)] {
				filtered = append(filtered, u)
			}
		}
		unmatching = filtered
	}

	return SkillMatch{Matching: matching, Unmatching: unmatching}
}

func buildSkillsPrompt(candidateSkills, vacancySkills []string) ([]ChatMessage, error) {
	system := "Ты — строгий генератор JSON. Сопоставляй требования из vacancy_skills с навыками из candidate_skills. " +
		"Понимай синонимы, аббревиатуры и типичные эквиваленты (например: PostgreSQL ~ SQL/БД; JS ~ JavaScript). " +
		"ОЧЕНЬ ВАЖНО: массивы 'matching' и 'unmatching' ДОЛЖНЫ содержать ИСКЛЮЧИТЕЛЬНО исходные строки из vacancy_skills, без изменений. " +
		"Если строка навыка в вакансии содержит логические альтернативы (например: 'Go или Python', 'Go/Python', 'Go or Python', 'Go | Python'), " +
		"то считай этот пункт удовлетворённым, если у кандидата есть ЛЮБОЙ из перечисленных вариантов. " +
		"Запятые или перечисления в отдельных пунктах vacancy_skills — это отдельные требования (каждый отдельно). " +
		"Выводи ТОЛЬКО JSON с ключами 'matching' и 'unmatching' (оба — массивы строк). Никаких пояснений."

	examples := "Пример 1:\n" +
		"candidate_skills: [\"Go\"]\n" +
		"vacancy_skills: [\"Go или Python\"]\n" +
		"Ответ: {\"matching\":[\"Go или Python\"],\"unmatching\":[]}\n\n" +
		"Пример 2:\n" +
		"candidate_skills: [\"PostgreSQL\", \"Docker\"]\n" +
		"vacancy_skills: [\"SQL\", \"Docker\", \"Kubernetes\"]\n" +
		"Ответ: {\"matching\":[\"Docker\"],\"unmatching\":[\"SQL\",\"Kubernetes\"]}\n\n"

	if candidateSkills == nil {
		candidateSkills = []string{}
	}
	candJSON, err := json.Marshal(candidateSkills)
	if err != nil {
		return nil, err
	}
	vacJSON, err := json.Marshal(vacancySkills)
	if err != nil {
		return nil, err
	}

	user := examples +
		"Сопоставь навыки и верни JSON.\n\n" +
		fmt.Sprintf("candidate_skills: %s\n", candJSON) +
		fmt.Sprintf("vacancy_skills: %s\n\n", vacJSON) +
		"Строгий формат ответа (без текста и markdown):\n" +
		"{\n  \"matching\": [.. ИСКЛЮЧИТЕЛЬНО элементы из vacancy_skills ..],\n  \"unmatching\": [.. ИСКЛЮЧИТЕЛЬНО элементы из vacancy_skills ..]\n}"

	return []ChatMessage{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: user},
	}, nil
}

// sanitizeSkills keeps only entries that are verbatim vacancy skills (compared
// case-insensitively) and maps them back to the vacancy list's casing.
func sanitizeSkills(items gjson.Result, vacancySkills []string) []string {
	cleaned := []string{}
	if !items.IsArray() {
		return cleaned
	}
	original := make(map[string]string, len(vacancySkills))
	for _, v := range vacancySkills {
		original[normalizeSkill(v)] = v
	}
	for _, it := range items.Array() {
		norm := normalizeSkill(it.String())
		if norm == "" {
			continue
		}
		if v, ok := original[norm]; ok && !containsFold(cleaned, v) {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}

// matchAlternatives returns vacancy skills written as alternatives
// ("Go или Python", "Go/Python") where the candidate has at least one option.
func matchAlternatives(vacancySkills, candidateSkills []string) []string {
	candSet := make(map[string]bool, len(candidateSkills))
	for _, c := range candidateSkills {
		candSet[normalizeSkill(c)] = true
	}

	markers := []string{" или ", " or ", "|", "/"}
	var result []string
	for _, v := range vacancySkills {
		lower := strings.ToLower(v)
		hasMarker := false
		for _, m := range markers {
			if strings.Contains(lower, m) {
				hasMarker = true
				break
			}
		}
		if !hasMarker {
			continue
		}
		normalized := strings.NewReplacer(" или ", "|", " or ", "|", "/", "|").Replace(lower)
		for _, part := range strings.Split(normalized, "|") {
			if part = strings.TrimSpace(part); part != "" && candSet[part] {
				result = append(result, v)
				break
			}
		}
	}
	return result
}

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsFold(list []string, s string) bool {
	for _, it := range list {
		if strings.EqualFold(strings.TrimSpace(it), strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}
