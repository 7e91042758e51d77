package service

import (
	"context"
	"time"

	"github.com/alexanderramin/studyplanner/internal/intelligence"
)

type explainService struct {
	history   HistoryService
	explainer intelligence.RunExplainer
	observer  UseCaseObserver
}

func NewExplainService(history HistoryService, explainer intelligence.RunExplainer, observers ...UseCaseObserver) ExplainService {
	return &explainService{
		history:   history,
		explainer: explainer,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *explainService) ExplainRun(ctx context.Context, runID string) (explanation *intelligence.Explanation, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"run_id": runID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "explain-run",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	run, err := s.history.Get(ctx, runID)
	if err != nil {
		return nil, err
	}
	explanation, err = s.explainer.ExplainRun(ctx, intelligence.BuildRunTrace(run))
	if err != nil {
		return nil, err
	}
	fields["confidence"] = explanation.Confidence
	return explanation, nil
}
