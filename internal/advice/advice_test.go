package advice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cloud-ru/mcp-mortgage-go/internal/cache"
	"github.com/cloud-ru/mcp-mortgage-go/internal/calculations"
)

type fakeGenerator struct {
	text    string
	err     error
	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func sampleInput() Input {
	return Input{
		TotalAmount:   1500000,
		Years:         30,
		Method:        calculations.EqualInstallment,
		FirstPayment:  6530.37,
		TotalInterest: 851000,
	}
}

func TestAdviseReturnsGeneratedText(t *testing.T) {
	gen := &fakeGenerator{text: "  月供压力适中，建议保留应急资金。 \n"}
	svc := NewService(gen, cache.NewMemoryCache(), time.Hour, time.Second, zap.NewNop())

	got := svc.Advise(context.Background(), sampleInput())

	assert.Equal(t, "月供压力适中，建议保留应急资金。", got)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "贷款总额：150.00万")
	assert.Contains(t, gen.prompts[0], "贷款年限：30年")
	assert.Contains(t, gen.prompts[0], "还款方式：等额本息")
	assert.Contains(t, gen.prompts[0], "首月还款：6530.37元")
	assert.Contains(t, gen.prompts[0], "总利息支出：85.10万")
}

func TestAdviseUsesCache(t *testing.T) {
	gen := &fakeGenerator{text: "建议提前还款。"}
	svc := NewService(gen, cache.NewMemoryCache(), time.Hour, 0, zap.NewNop())

	first := svc.Advise(context.Background(), sampleInput())
	second := svc.Advise(context.Background(), sampleInput())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, gen.calls)
}

func TestAdviseFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		generator Generator
		want      string
	}{
		{"generator error", &fakeGenerator{err: errors.New("connection refused")}, FallbackUnavailable},
		{"empty response", &fakeGenerator{text: "   "}, FallbackEmpty},
		{"disabled", nil, FallbackUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.generator, cache.NewMemoryCache(), time.Hour, time.Second, zap.NewNop())
			assert.Equal(t, tt.want, svc.Advise(context.Background(), sampleInput()))
		})
	}
}

func TestAdviseDoesNotCacheFailures(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("timeout")}
	svc := NewService(gen, cache.NewMemoryCache(), time.Hour, time.Second, zap.NewNop())

	svc.Advise(context.Background(), sampleInput())
	gen.err = nil
	gen.text = "现在可以了。"

	assert.Equal(t, "现在可以了。", svc.Advise(context.Background(), sampleInput()))
	assert.Equal(t, 2, gen.calls)
}

func TestInputFromResult(t *testing.T) {
	result, err := calculations.Calculate(calculations.MortgageRequest{
		LoanType:   calculations.Commercial,
		Method:     calculations.EqualPrincipal,
		TermYears:  30,
		Commercial: calculations.SubLoan{Principal: 1000000, AnnualRatePercent: 3.45},
	})
	require.NoError(t, err)

	in := InputFromResult(result, 30, calculations.EqualPrincipal)

	assert.Equal(t, 1000000.0, in.TotalAmount)
	assert.Equal(t, result.TotalMonthlyPayment, in.FirstPayment)
	assert.Equal(t, result.TotalInterest, in.TotalInterest)
	assert.Contains(t, BuildPrompt(in), "等额本金")
}
