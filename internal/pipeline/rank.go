// Package pipeline composes taxonomy resolution, skill matching, scoring,
// feature extraction, and rank prediction into one ranking run per vacancy.
package pipeline

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-ranker/internal/features"
	"github.com/jonathan/candidate-ranker/internal/logger"
	"github.com/jonathan/candidate-ranker/internal/model"
	"github.com/jonathan/candidate-ranker/internal/scoring"
	"github.com/jonathan/candidate-ranker/internal/taxonomy"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// maxConcurrentCandidates bounds the per-candidate goroutine fan-out.
const maxConcurrentCandidates = 8

// Candidate is one resume plus its externally computed raw match signals.
// Keyword/TF-IDF/vector similarity computation happens upstream; the
// pipeline only combines and ranks.
type Candidate struct {
	Resume                *types.Resume `json:"resume"`
	KeywordScore          float64       `json:"keyword_score"`
	TFIDFScore            float64       `json:"tfidf_score"`
	VectorScore           float64       `json:"vector_score"`
	DaysSinceLastActivity float64       `json:"days_since_last_activity"`
}

// RankedResult is one candidate's full ranking output.
type RankedResult struct {
	Rank     types.CandidateRank   `json:"rank"`
	Match    *types.MatchResult    `json:"match"`
	Features types.RankingFeatures `json:"features"`
	// UsedFallback is true when the model was untrained and the rank score
	// is the unified match score scaled to 0-100.
	UsedFallback bool `json:"used_fallback"`
}

// Pipeline wires the ranking stages together.
type Pipeline struct {
	resolver   *taxonomy.Resolver
	scorer     *scoring.Scorer
	model      *model.Model
	experiment *model.Experiment
	log        *zap.Logger
}

// New builds a ranking pipeline. experiment may be nil when no A/B split is
// running.
func New(resolver *taxonomy.Resolver, scorer *scoring.Scorer, rankModel *model.Model, experiment *model.Experiment, log *zap.Logger) *Pipeline {
	return &Pipeline{
		resolver:   resolver,
		scorer:     scorer,
		model:      rankModel,
		experiment: experiment,
		log:        logger.OrNop(log),
	}
}

// Rank scores every candidate against the vacancy and returns results sorted
// descending by rank score, ties keeping input order. Candidates are
// processed concurrently; the merge resolve happens once up front so the
// workers share one taxonomy snapshot.
func (p *Pipeline) Rank(ctx context.Context, vacancy *types.Vacancy, candidates []Candidate) ([]RankedResult, error) {
	merged := p.resolver.Resolve(ctx, vacancy.OrganizationID, vacancy.Industry)
	extractor := features.NewExtractor(merged, time.Now().UTC())

	results := make([]RankedResult, len(candidates))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentCandidates)
	for i, candidate := range candidates {
		g.Go(func() error {
			result, err := p.rankOne(gCtx, vacancy, candidate, merged, extractor)
			if err != nil {
				return err
			}
			results[i] = *result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rank.RankScore > results[j].Rank.RankScore
	})
	return results, nil
}

// rankOne runs match -> score -> extract -> predict for one candidate.
func (p *Pipeline) rankOne(ctx context.Context, vacancy *types.Vacancy, candidate Candidate, merged types.MergedTaxonomy, extractor *features.Extractor) (*RankedResult, error) {
	match, err := p.scorer.BuildMatchResult(ctx, candidate.Resume, vacancy, merged,
		candidate.KeywordScore, candidate.TFIDFScore, candidate.VectorScore)
	if err != nil {
		return nil, err
	}

	featureVec := extractor.Extract(match, vacancy, candidate.Resume, candidate.DaysSinceLastActivity)

	result := &RankedResult{
		Match:    match,
		Features: featureVec,
	}

	score, confidence, err := p.model.Predict(featureVec)
	switch {
	case err == nil:
		contributions, _ := p.model.Contributions(featureVec)
		result.Rank = types.CandidateRank{
			RankScore:     score,
			Confidence:    confidence,
			Contributions: contributions,
			ModelVersion:  p.model.Version(),
		}
	case errors.Is(err, model.ErrModelNotTrained):
		// Explicit fallback contract: the unified match score carries the
		// ranking until a model has been trained.
		p.log.Debug("model untrained, falling back to match score",
			zap.String("resume_id", candidate.Resume.ID.String()))
		result.UsedFallback = true
		result.Rank = types.CandidateRank{
			RankScore:  match.UnifiedScore * 100,
			Confidence: 0,
		}
	default:
		return nil, err
	}

	result.Rank.ResumeID = candidate.Resume.ID
	result.Rank.VacancyID = vacancy.ID
	result.Rank.Recommendation = model.ClassifyRecommendation(result.Rank.RankScore)
	result.Rank.ExperimentGroup = p.experiment.Assign(candidate.Resume.ID)
	result.Rank.PredictedAt = time.Now().UTC()
	return result, nil
}
