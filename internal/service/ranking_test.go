package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godilite/feedback-insights/internal/feedback"
)

func TestRankNegative(t *testing.T) {
	t.Run("ascending by score", func(t *testing.T) {
		tbl := table(feedback.SourceTrustpilot,
			textRec("ok", 0.1),
			textRec("awful", -0.9),
			textRec("great", 0.8),
			textRec("bad", -0.4),
		)

		ranked := RankNegative(tbl)

		assert.Equal(t, []string{"awful", "bad", "ok", "great"}, ranked.Texts())
	})

	t.Run("ties keep table order", func(t *testing.T) {
		tbl := table(feedback.SourceTwitter,
			textRec("first", -0.5),
			textRec("lowest", -0.8),
			textRec("second", -0.5),
			textRec("third", -0.5),
		)

		ranked := RankNegative(tbl)

		assert.Equal(t, []string{"lowest", "first", "second", "third"}, ranked.Texts())
	})

	t.Run("idempotent", func(t *testing.T) {
		records := make([]feedback.Record, 40)
		for i := range records {
			records[i] = textRec(fmt.Sprintf("comment-%02d", i), float64(i%5)-2)
		}
		tbl := table(feedback.SourceSurvey, records...)

		first := RankNegative(tbl).Texts()
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, RankNegative(tbl).Texts())
		}
	})

	t.Run("input order untouched", func(t *testing.T) {
		tbl := table(feedback.SourceTwitter, textRec("b", 1), textRec("a", -1))

		_ = RankNegative(tbl)

		assert.Equal(t, "b", tbl.Records[0].Text)
	})

	t.Run("texts returns a copy", func(t *testing.T) {
		ranked := RankNegative(table(feedback.SourceTwitter, textRec("a", -1)))
		texts := ranked.Texts()
		texts[0] = "changed"

		got, err := ranked.At(0)
		require.NoError(t, err)
		assert.Equal(t, "a", got)
	})
}

func TestSelect(t *testing.T) {
	records := make([]feedback.Record, 16)
	for i := range records {
		// scores descend with i, so rank position p holds comment-(15-p)
		records[i] = textRec(fmt.Sprintf("comment-%02d", i), float64(-i))
	}
	ranked := RankNegative(table(feedback.SourceSurvey, records...))
	positions := []int{0, 1, 4, 5, 7, 10, 12, 14}

	t.Run("curated positions", func(t *testing.T) {
		texts, err := Select(ranked, positions)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"comment-15", "comment-14", "comment-11", "comment-10",
			"comment-08", "comment-05", "comment-03", "comment-01",
		}, texts)
	})

	t.Run("returns one text per position", func(t *testing.T) {
		small := RankNegative(table(feedback.SourceSurvey, records[:15]...))

		texts, err := Select(small, positions)

		require.NoError(t, err)
		assert.Len(t, texts, 8)
	})

	t.Run("position past the end", func(t *testing.T) {
		short := RankNegative(table(feedback.SourceTwitter, records[:8]...))

		texts, err := Select(short, positions)

		assert.Nil(t, texts)
		require.ErrorIs(t, err, feedback.ErrIndex)
		var ie *feedback.IndexError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, 10, ie.Position)
		assert.Equal(t, 8, ie.Len)
	})

	t.Run("position equal to length", func(t *testing.T) {
		_, err := Select(ranked, []int{16})
		assert.ErrorIs(t, err, feedback.ErrIndex)
	})

	t.Run("negative position", func(t *testing.T) {
		_, err := Select(ranked, []int{-1})
		assert.ErrorIs(t, err, feedback.ErrIndex)
	})

	t.Run("empty ranking", func(t *testing.T) {
		_, err := Select(RankNegative(nil), []int{0})
		assert.ErrorIs(t, err, feedback.ErrIndex)
	})
}
