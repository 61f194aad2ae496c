package advice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cloud-ru/mcp-mortgage-go/internal/cache"
	"github.com/cloud-ru/mcp-mortgage-go/internal/calculations"
	"github.com/cloud-ru/mcp-mortgage-go/internal/metrics"
	"github.com/cloud-ru/mcp-mortgage-go/pkg/utils"
)

const (
	// FallbackEmpty возвращается, когда генератор ответил пустым текстом
	FallbackEmpty = "暂时无法获取建议，请稍后再试。"
	// FallbackUnavailable возвращается при ошибке или отключенном генераторе
	FallbackUnavailable = "AI 建议服务暂时不可用，请检查网络连接。"
)

// Generator внешний сервис генерации текста
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Input сводные показатели ипотеки, передаваемые в запрос
type Input struct {
	TotalAmount   float64
	Years         int
	Method        calculations.RepaymentMethod
	FirstPayment  float64
	TotalInterest float64
}

// InputFromResult собирает Input из сводного результата расчета
func InputFromResult(result *calculations.CombinedResult, years int, method calculations.RepaymentMethod) Input {
	return Input{
		TotalAmount:   result.TotalPrincipal,
		Years:         years,
		Method:        method,
		FirstPayment:  result.TotalMonthlyPayment,
		TotalInterest: result.TotalInterest,
	}
}

// Service выдает текстовый совет по ипотеке. Ошибки генератора никогда не возвращаются вызывающему
type Service struct {
	generator Generator
	cache     cache.Repository
	cacheTTL  time.Duration
	timeout   time.Duration
	log       *zap.Logger
}

// NewService создает сервис советов. generator может быть nil: тогда всегда возвращается запасной текст
func NewService(generator Generator, c cache.Repository, cacheTTL, timeout time.Duration, log *zap.Logger) *Service {
	return &Service{
		generator: generator,
		cache:     c,
		cacheTTL:  cacheTTL,
		timeout:   timeout,
		log:       log,
	}
}

// Advise возвращает совет или запасной текст
func (s *Service) Advise(ctx context.Context, in Input) string {
	if s.generator == nil {
		metrics.AdviceRequests.WithLabelValues("disabled").Inc()
		return FallbackUnavailable
	}

	prompt := BuildPrompt(in)
	key := cacheKey(prompt)

	if s.cache != nil {
		if text, ok := s.cache.Get(ctx, key); ok {
			metrics.AdviceRequests.WithLabelValues("cache_hit").Inc()
			return text
		}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.log.Error("advice generation failed", zap.Error(err))
		metrics.AdviceRequests.WithLabelValues("error").Inc()
		return FallbackUnavailable
	}

	text = strings.TrimSpace(text)
	if text == "" {
		metrics.AdviceRequests.WithLabelValues("empty").Inc()
		return FallbackEmpty
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, text, s.cacheTTL); err != nil {
			s.log.Warn("failed to cache advice", zap.Error(err))
		}
	}

	metrics.AdviceRequests.WithLabelValues("success").Inc()
	return text
}

// BuildPrompt формирует запрос к генератору
func BuildPrompt(in Input) string {
	return fmt.Sprintf(`我是一名购房者，正在使用房贷计算器。请根据以下数据为我提供一段简短、专业的财务建议（150字以内）。

数据：
- 贷款总额：%.2f万
- 贷款年限：%d年
- 还款方式：%s
- 首月还款：%.2f元
- 总利息支出：%.2f万

请分析还款压力，并给出一条关于理财或提前还款的建议。语气要亲切、客观。`,
		utils.YuanToWan(in.TotalAmount),
		in.Years,
		in.Method.Label(),
		in.FirstPayment,
		utils.YuanToWan(in.TotalInterest),
	)
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
