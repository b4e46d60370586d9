package service

import (
	"adhyeta_backend/internal/model"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeQuestion(id uint, d model.Difficulty) model.QuizQuestion {
	q := model.QuizQuestion{Difficulty: d}
	q.ID = id
	return q
}

func balancedPool() []model.QuizQuestion {
	var pool []model.QuizQuestion
	id := uint(1)
	for _, d := range []model.Difficulty{model.Easy, model.Medium, model.Hard} {
		for i := 0; i < 3; i++ {
			pool = append(pool, makeQuestion(id, d))
			id++
		}
	}
	return pool
}

func tierCounts(questions []model.QuizQuestion) map[model.Difficulty]int {
	counts := map[model.Difficulty]int{}
	for _, q := range questions {
		counts[q.Difficulty]++
	}
	return counts
}

func TestComposeQuiz_BalancedQuota(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	chosen := ComposeQuiz(balancedPool(), 6, rng)

	require.Len(t, chosen, 6)
	counts := tierCounts(chosen)
	assert.Equal(t, 2, counts[model.Easy])
	assert.Equal(t, 2, counts[model.Medium])
	assert.Equal(t, 2, counts[model.Hard])
}

func TestComposeQuiz_EmptyPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Empty(t, ComposeQuiz(nil, 6, rng))
}

func TestComposeQuiz_BackfillsFromRemainingPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	var pool []model.QuizQuestion
	for i := uint(1); i <= 5; i++ {
		pool = append(pool, makeQuestion(i, model.Easy))
	}

	chosen := ComposeQuiz(pool, 6, rng)

	require.Len(t, chosen, 5)
	seen := map[uint]bool{}
	for _, q := range chosen {
		assert.False(t, seen[q.ID], "question %d drawn twice", q.ID)
		seen[q.ID] = true
	}
}

func TestComposeQuiz_TruncatesToCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	chosen := ComposeQuiz(balancedPool(), 4, rng)
	assert.Len(t, chosen, 4)
}

func TestComposeQuiz_DeterministicForSeed(t *testing.T) {
	first := ComposeQuiz(balancedPool(), 6, rand.New(rand.NewSource(42)))
	second := ComposeQuiz(balancedPool(), 6, rand.New(rand.NewSource(42)))

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestRankWeakest(t *testing.T) {
	mk := func(id uint, title string) model.Topic {
		topic := model.Topic{Title: title}
		topic.ID = id
		return topic
	}

	stats := []topicStat{
		{topic: mk(1, "Algebra"), ratio: 0.8},
		{topic: mk(2, "Geometry"), ratio: 0.1},
		{topic: mk(3, "Probability"), ratio: 0.5},
	}

	ranked := rankWeakest(stats, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "Geometry", ranked[0].Title)
	assert.Equal(t, "Probability", ranked[1].Title)
}

func TestRankWeakest_LimitBeyondLength(t *testing.T) {
	topic := model.Topic{Title: "Algebra"}
	topic.ID = 1

	ranked := rankWeakest([]topicStat{{topic: topic, ratio: 0.2}}, 5)
	assert.Len(t, ranked, 1)
}
