package judge

import (
	"fmt"
	"strconv"
	"strings"

	"NewsSifter/internal/domain"
)

const scalarSystemPrompt = "당신은 뉴스 기사의 지면 게재 가능성을 판단하는 전문가입니다."

// scalarStrategy asks for a single print-likelihood number per item.
type scalarStrategy struct{}

func (scalarStrategy) prompts(item domain.NewsItem) (string, string) {
	user := fmt.Sprintf(`다음 뉴스가 지면(인쇄판) 기사일 가능성을 0.0~1.0 사이의 숫자로 평가해주세요.

뉴스 정보:
- 제목: %s
- 요약: %s
- 도메인: %s
- 언론사: %s

지면 기사의 특징:
- 신문 지면에 실리는 기사
- 온라인 전용이 아닌 인쇄물 기사
- 종이 신문에 게재되는 기사
- 온라인과 지면에 동시 게재되는 기사도 포함

평가 기준:
- 0.0: 온라인 전용 기사일 가능성 높음
- 0.5: 지면과 온라인 동시 게재 가능성
- 1.0: 지면 전용 기사일 가능성 높음

답변은 반드시 0.0~1.0 사이의 숫자만 출력하세요.`,
		item.Title, item.Description, item.Domain, item.SourceName)
	return scalarSystemPrompt, user
}

// judge parses the bare score. A non-numeric or out-of-range response is a
// classification failure for the item: the score is never set and the item
// drops out of the judged set.
func (scalarStrategy) judge(item *domain.NewsItem, response string, threshold float64) (bool, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(response), 64)
	if err != nil {
		return false, fmt.Errorf("parse score %q: %w", response, err)
	}
	if score < 0 || score > 1 {
		return false, fmt.Errorf("score %v out of range", score)
	}
	item.PrintScore = &score
	return score >= threshold, nil
}
