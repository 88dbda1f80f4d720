package mock

import (
	"context"

	"github.com/fwojciec/newsarchive"
)

var _ newsarchive.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of newsarchive.ArticleService.
type ArticleService struct {
	FindArticleByIDFn    func(ctx context.Context, id int) (*newsarchive.Article, error)
	FindArticlesFn       func(ctx context.Context, filter newsarchive.ArticleFilter) ([]*newsarchive.Article, int, error)
	FindArticlesByDateFn func(ctx context.Context, date string) ([]*newsarchive.Article, error)
	StatisticsFn         func(ctx context.Context) (*newsarchive.Statistics, error)
	TimelineFn           func(ctx context.Context) ([]newsarchive.DayCount, error)
	KeywordCountsFn      func(ctx context.Context, keywords []string) ([]newsarchive.WordCount, error)
	MostActiveDaysFn     func(ctx context.Context, n int) ([]newsarchive.DayCount, error)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id int) (*newsarchive.Article, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter newsarchive.ArticleFilter) ([]*newsarchive.Article, int, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) FindArticlesByDate(ctx context.Context, date string) ([]*newsarchive.Article, error) {
	return s.FindArticlesByDateFn(ctx, date)
}

func (s *ArticleService) Statistics(ctx context.Context) (*newsarchive.Statistics, error) {
	return s.StatisticsFn(ctx)
}

func (s *ArticleService) Timeline(ctx context.Context) ([]newsarchive.DayCount, error) {
	return s.TimelineFn(ctx)
}

func (s *ArticleService) KeywordCounts(ctx context.Context, keywords []string) ([]newsarchive.WordCount, error) {
	return s.KeywordCountsFn(ctx, keywords)
}

func (s *ArticleService) MostActiveDays(ctx context.Context, n int) ([]newsarchive.DayCount, error) {
	return s.MostActiveDaysFn(ctx, n)
}
