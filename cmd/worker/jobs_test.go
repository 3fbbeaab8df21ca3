package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyTopicsOnePerDay(t *testing.T) {
	topics := dailyTopics(time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC))

	require.Len(t, topics, 1)
	assert.NotEmpty(t, topics[0].Topic)
	assert.NotEmpty(t, topics[0].Keywords)
	assert.Positive(t, topics[0].WordCount)
}

func TestDailyTopicsRotateDayToDay(t *testing.T) {
	day := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	today := dailyTopics(day)[0]
	tomorrow := dailyTopics(day.AddDate(0, 0, 1))[0]

	assert.NotEqual(t, today.Topic, tomorrow.Topic)
}

func TestDailyTopicsCycleWholeList(t *testing.T) {
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	seen := make(map[string]bool)
	for i := 0; i < len(dailyBlogTopics); i++ {
		seen[dailyTopics(start.AddDate(0, 0, i))[0].Topic] = true
	}

	assert.Len(t, seen, len(dailyBlogTopics), "every editorial topic should get a publishing day")
}
