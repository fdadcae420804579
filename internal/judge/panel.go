package judge

import (
	"fmt"
	"strconv"
	"strings"

	"NewsSifter/internal/domain"
)

const panelSystemPrompt = "당신은 뉴스의 지면 가능성과 실용성을 종합적으로 판단하는 전문가입니다."

const (
	labelPrint   = "지면가능성:"
	labelUtility = "실용성:"
	labelTotal   = "종합점수:"
	labelInclude = "포함여부:"
	labelReason  = "이유:"
)

// panelStrategy asks for the multi-field structured verdict: print
// likelihood, utility, overall score, an include/exclude decision, and a
// free-text rationale.
type panelStrategy struct{}

func (panelStrategy) prompts(item domain.NewsItem) (string, string) {
	user := fmt.Sprintf(`다음 뉴스에 대해 지면뉴스 가능성과 실용성을 종합적으로 판단해주세요.

뉴스 정보:
- 제목: %s
- 요약: %s
- 도메인: %s
- 언론사: %s

판단 기준:

1. 지면뉴스 가능성 (0.0~1.0):
- 0.0: 온라인 전용 기사
- 0.5: 지면과 온라인 동시 게재 가능성
- 1.0: 지면 전용 기사 가능성 높음

2. 실용성 및 객관성 (0.0~1.0):
- 포함할 기사: 기업 경영 전략, 재무관리, 위기관리 등 실질적 도움 제공
- 제외할 기사: 개인 관련, 홍보성, 사회적 이슈, 단순 사건사고 등

3. 종합 점수 (0.0~1.0):
- 지면뉴스 + 실용성 + 객관성을 종합한 최종 점수

판단 결과를 다음 형식으로 출력하세요:
지면가능성: [0.0~1.0]
실용성: [0.0~1.0]
종합점수: [0.0~1.0]
포함여부: [예/아니오]
이유: [판단 이유 간단 설명]`,
		item.Title, item.Description, item.Domain, item.SourceName)
	return panelSystemPrompt, user
}

// judge parses the labeled response and retains the item iff the overall
// score clears the threshold AND the decision is affirmative. A malformed
// numeric field defaults to 0.0 for that field only, so partial format drift
// never fails the whole item.
func (panelStrategy) judge(item *domain.NewsItem, response string, threshold float64) (bool, error) {
	verdict := parsePanelResponse(response)
	item.Judgment = &verdict
	return verdict.TotalScore >= threshold && verdict.Include, nil
}

func parsePanelResponse(response string) domain.Judgment {
	var verdict domain.Judgment
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, labelPrint):
			verdict.PrintScore = parseUnitScore(strings.TrimPrefix(line, labelPrint))
		case strings.HasPrefix(line, labelUtility):
			verdict.UtilityScore = parseUnitScore(strings.TrimPrefix(line, labelUtility))
		case strings.HasPrefix(line, labelTotal):
			verdict.TotalScore = parseUnitScore(strings.TrimPrefix(line, labelTotal))
		case strings.HasPrefix(line, labelInclude):
			verdict.Include = isAffirmative(strings.TrimPrefix(line, labelInclude))
		case strings.HasPrefix(line, labelReason):
			verdict.Reason = strings.TrimSpace(strings.TrimPrefix(line, labelReason))
		}
	}
	return verdict
}

// parseUnitScore reads a [0,1] float; malformed or out-of-range values
// degrade to 0.0 for that field only.
func parseUnitScore(s string) float64 {
	score, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || score < 0 || score > 1 {
		return 0
	}
	return score
}

// Recognized decision tokens. Negations are checked first so that answers
// like "아니오, 포함하지 않음" stay negative despite containing 포함.
var (
	negativeTokens    = []string{"아니오", "아니요", "포함하지", "제외", "no"}
	affirmativeTokens = []string{"예", "포함", "yes", "include"}
)

func isAffirmative(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, token := range negativeTokens {
		if strings.Contains(s, token) {
			return false
		}
	}
	for _, token := range affirmativeTokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
