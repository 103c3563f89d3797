package itinerary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	generativeAI "github.com/FACorreiaa/go-travel-consultant/internal/api/generative_ai"
	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

func assertComplete(t *testing.T, it types.Itinerary, days int) {
	t.Helper()
	require.Len(t, it.Days, days)
	for i, d := range it.Days {
		assert.Equal(t, i+1, d.Day)
		assert.NotEmpty(t, d.Date)
		assert.GreaterOrEqual(t, len(d.Activities), MinActivitiesPerDay)
		assert.LessOrEqual(t, len(d.Activities), MaxActivitiesPerDay)
		for _, a := range d.Activities {
			assert.NotEmpty(t, a.Time)
			assert.NotEmpty(t, a.Activity)
			assert.NotEmpty(t, a.Location)
		}
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", "Here is your plan:\n{\"a\":1}\nEnjoy!", `{"a":1}`},
		{"no json", "I cannot help with that.", "I cannot help with that."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanJSONResponse(tt.in))
		})
	}
}

func TestInterpret_Valid(t *testing.T) {
	plan := testPlan(t, 3)
	it, repaired, err := Interpret(modelResponse(t, "Paris", 3, 5), plan, parisAttractions)

	require.NoError(t, err)
	assert.Zero(t, repaired)
	assertComplete(t, it, 3)
	assert.Equal(t, "Paris, France", it.Destination)
	assert.Equal(t, "Theme 2", it.Days[1].Title)
	// dates follow the trip, not the model
	assert.Equal(t, "2024-06-02", it.Days[1].Date)
	assert.Equal(t, "Stop 1 of day 1", it.Days[0].Activities[0].Activity)
}

func TestInterpret_Fenced(t *testing.T) {
	plan := testPlan(t, 2)
	raw := "```json\n" + modelResponse(t, "Paris", 2, 4) + "\n```"

	it, repaired, err := Interpret(raw, plan, parisAttractions)
	require.NoError(t, err)
	assert.Zero(t, repaired)
	assertComplete(t, it, 2)
}

func TestInterpret_Prose(t *testing.T) {
	_, _, err := Interpret("Paris is lovely in June. Start at the Louvre, then walk the Seine.", testPlan(t, 2), parisAttractions)
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestInterpret_Truncated(t *testing.T) {
	raw := modelResponse(t, "Paris", 2, 4)
	_, _, err := Interpret(raw[:len(raw)/2]+"}", testPlan(t, 2), parisAttractions)
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestInterpret_MissingDaysRepaired(t *testing.T) {
	plan := testPlan(t, 4)
	it, repaired, err := Interpret(modelResponse(t, "Paris", 2, 5), plan, parisAttractions)

	require.NoError(t, err)
	assert.Equal(t, 2, repaired)
	assertComplete(t, it, 4)
	assert.Equal(t, "Stop 1 of day 2", it.Days[1].Activities[0].Activity)
	assert.Equal(t, fallbackDay(plan, parisAttractions, 3), it.Days[2])
	assert.Equal(t, "2024-06-04", it.Days[3].Date)
}

func TestInterpret_DropsBadDays(t *testing.T) {
	plan := testPlan(t, 2)
	raw := `{"days":[
		{"day":1,"activities":[
			{"time":"09:00","activity":"A","location":"L"},
			{"activity":"B"},
			{"time":"13:00","name":"C","location":"L"},
			{"time":"15:00","location":"no description"},
			{"time":"17:00","activity":"D","location":"L"}
		]},
		{"day":1,"activities":[{"activity":"dup"},{"activity":"dup"},{"activity":"dup"},{"activity":"dup"}]},
		{"day":7,"activities":[{"activity":"x"},{"activity":"x"},{"activity":"x"},{"activity":"x"}]},
		{"day":2,"activities":[{"activity":"too"},{"activity":"few"}]}
	]}`

	it, repaired, err := Interpret(raw, plan, parisAttractions)
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)
	assertComplete(t, it, 2)

	day1 := it.Days[0].Activities
	require.Len(t, day1, 4)
	assert.Equal(t, "A", day1[0].Activity)
	assert.Equal(t, "Late Morning", day1[1].Time)
	assert.Equal(t, "Paris, France", day1[1].Location)
	assert.Equal(t, "C", day1[2].Activity)
	assert.Equal(t, "D", day1[3].Activity)
	assert.Equal(t, "Day 1 in Paris, France", it.Days[0].Title)

	assert.Equal(t, fallbackDay(plan, parisAttractions, 2), it.Days[1])
}

func TestInterpret_TruncatesActivities(t *testing.T) {
	it, _, err := Interpret(modelResponse(t, "Paris", 1, 9), testPlan(t, 1), nil)
	require.NoError(t, err)
	assert.Len(t, it.Days[0].Activities, MaxActivitiesPerDay)
}

func TestInterpret_WrappedAndLooseTypes(t *testing.T) {
	raw := `{"itinerary":{"destination":"Paris","days":[{"day":"1","title":"Arrival","activities":[
		{"time":"09:00","activity":"A","location":"L","duration":2,"imageSearch":"louvre"},
		{"time":"11:00","activity":"B","location":"L"},
		{"time":"13:00","activity":"C","location":"L"},
		{"time":"15:00","activity":"D","location":"L"}
	]}]}}`

	it, repaired, err := Interpret(raw, testPlan(t, 1), nil)
	require.NoError(t, err)
	assert.Zero(t, repaired)
	assert.Equal(t, "2", it.Days[0].Activities[0].Duration)
	assert.Equal(t, "louvre", it.Days[0].Activities[0].ImageSearch)
}

func TestInterpret_MissingOrdinalsUsePosition(t *testing.T) {
	raw := `{"days":[
		{"activities":[{"activity":"a"},{"activity":"b"},{"activity":"c"},{"activity":"d"}]},
		{"activities":[{"activity":"e"},{"activity":"f"},{"activity":"g"},{"activity":"h"}]}
	]}`
	it, repaired, err := Interpret(raw, testPlan(t, 2), nil)
	require.NoError(t, err)
	assert.Zero(t, repaired)
	assert.Equal(t, "e", it.Days[1].Activities[0].Activity)
	assert.Equal(t, "Morning", it.Days[1].Activities[0].Time)
}

func TestInterpret_ZeroBasedOrdinals(t *testing.T) {
	raw := `{"days":[
		{"day":0,"title":"First","activities":[{"activity":"a"},{"activity":"b"},{"activity":"c"},{"activity":"d"}]},
		{"day":1,"title":"Second","activities":[{"activity":"e"},{"activity":"f"},{"activity":"g"},{"activity":"h"}]},
		{"day":2,"title":"Third","activities":[{"activity":"i"},{"activity":"j"},{"activity":"k"},{"activity":"l"}]}
	]}`
	it, repaired, err := Interpret(raw, testPlan(t, 3), parisAttractions)
	require.NoError(t, err)
	assert.Zero(t, repaired)
	assertComplete(t, it, 3)
	assert.Equal(t, "First", it.Days[0].Title)
	assert.Equal(t, "Second", it.Days[1].Title)
	assert.Equal(t, "Third", it.Days[2].Title)
	assert.Equal(t, "i", it.Days[2].Activities[0].Activity)
}

func TestInterpret_UnnumberedLabelsUsePosition(t *testing.T) {
	raw := `{"days":[
		{"day":"Day one","activities":[{"activity":"a"},{"activity":"b"},{"activity":"c"},{"activity":"d"}]},
		{"day":null,"activities":[{"activity":"e"},{"activity":"f"},{"activity":"g"},{"activity":"h"}]}
	]}`
	it, repaired, err := Interpret(raw, testPlan(t, 2), nil)
	require.NoError(t, err)
	assert.Zero(t, repaired)
	assert.Equal(t, "e", it.Days[1].Activities[0].Activity)
}

func TestInterpret_NoUsableDays(t *testing.T) {
	_, _, err := Interpret(`{"destination":"Paris","days":[]}`, testPlan(t, 2), nil)
	assert.ErrorIs(t, err, ErrNoUsableDays)
}

func TestInterpreter_Generate(t *testing.T) {
	plan := testPlan(t, 3)
	ctx := context.Background()

	t.Run("model success", func(t *testing.T) {
		gen := new(MockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything, mock.MatchedBy(func(o generativeAI.GenerateOptions) bool {
			return o.JSON && o.MaxTokens == 2000
		})).Return(modelResponse(t, "Paris", 3, 4), nil).Once()

		interp := NewInterpreter(gen, generativeAI.GenerateOptions{MaxTokens: 2000}, testLogger, testMetrics(t)).
			Generate(ctx, plan, "prompt", parisAttractions)

		assert.Equal(t, types.ItinerarySourceAI, interp.Source)
		assert.Zero(t, interp.RepairedDays)
		assertComplete(t, interp.Itinerary, 3)
		gen.AssertExpectations(t)
	})

	t.Run("token budget grows with trip length", func(t *testing.T) {
		long := testPlan(t, 30)
		var got []int
		gen := new(MockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				got = append(got, args.Get(2).(generativeAI.GenerateOptions).MaxTokens)
			}).
			Return(modelResponse(t, "Paris", 30, 4), nil)

		interp := NewInterpreter(gen, generativeAI.GenerateOptions{MaxTokens: 2000}, testLogger, testMetrics(t))
		interp.Generate(ctx, plan, "prompt", nil)
		out := interp.Generate(ctx, long, "prompt", nil)
		interp.WithTokenBudget(0, 8000).Generate(ctx, long, "prompt", nil)

		assert.Equal(t, []int{2000, 300 + 30*DefaultTokensPerDay, 8000}, got)
		assert.Equal(t, types.ItinerarySourceAI, out.Source)
	})

	t.Run("messages carry system and prompt", func(t *testing.T) {
		gen := new(MockGenerator)
		gen.On("Generate", mock.Anything, mock.MatchedBy(func(msgs []types.ChatMessage) bool {
			return len(msgs) == 2 && msgs[0].Role == types.ChatRoleSystem && msgs[1].Content == "the prompt"
		}), mock.Anything).Return(modelResponse(t, "Paris", 3, 4), nil).Once()

		NewInterpreter(gen, generativeAI.GenerateOptions{}, testLogger, testMetrics(t)).Generate(ctx, plan, "the prompt", nil)
		gen.AssertExpectations(t)
	})

	t.Run("generation error falls back", func(t *testing.T) {
		gen := new(MockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("openrouter: context deadline exceeded")).Once()

		interp := NewInterpreter(gen, generativeAI.GenerateOptions{}, testLogger, testMetrics(t)).Generate(ctx, plan, "prompt", parisAttractions)

		assert.Equal(t, types.ItinerarySourceFallback, interp.Source)
		assert.Equal(t, ReasonGenerationError, interp.Reason)
		assert.Equal(t, Synthesize(plan, parisAttractions), interp.Itinerary)
	})

	t.Run("prose falls back", func(t *testing.T) {
		gen := new(MockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("Sorry, I can only chat about travel.", nil).Once()

		interp := NewInterpreter(gen, generativeAI.GenerateOptions{}, testLogger, testMetrics(t)).Generate(ctx, plan, "prompt", nil)

		assert.Equal(t, types.ItinerarySourceFallback, interp.Source)
		assert.Equal(t, ReasonParseError, interp.Reason)
		assertComplete(t, interp.Itinerary, 3)
	})

	t.Run("partial output repaired", func(t *testing.T) {
		gen := new(MockGenerator)
		fenced := "```json\n" + modelResponse(t, "Paris", 1, 4) + "\n```"
		gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(fenced, nil).Once()

		interp := NewInterpreter(gen, generativeAI.GenerateOptions{}, testLogger, testMetrics(t)).Generate(ctx, plan, "prompt", nil)

		assert.Equal(t, types.ItinerarySourceAIRepaired, interp.Source)
		assert.Equal(t, 2, interp.RepairedDays)
		assertComplete(t, interp.Itinerary, 3)
		assert.True(t, strings.HasPrefix(interp.Itinerary.Days[0].Activities[0].Activity, "Stop"))
	})
}
