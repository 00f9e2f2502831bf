package keyboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGridSparseSelection(t *testing.T) {
	// Апрель 2025: 1 апреля - вторник
	grid := MonthGrid{
		Year:  2025,
		Month: time.April,
		Selectable: map[string]bool{
			"2025-04-07": true,
			"2025-04-15": true,
		},
		SelectPrefix: "user_day:",
		NavPrefix:    "user_calendar:",
	}

	markup := grid.Markup()

	var selectable []string
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != "noop" && btn.CallbackData != "" {
				selectable = append(selectable, btn.CallbackData)
			}
		}
	}

	// Кликабельны только дни со свободными слотами
	assert.ElementsMatch(t, []string{"user_day:2025-04-07", "user_day:2025-04-15"}, selectable)
}

func TestMonthGridMondayFirstLayout(t *testing.T) {
	// Апрель 2025 начинается со вторника: первая ячейка сетки пустая
	grid := MonthGrid{
		Year:         2025,
		Month:        time.April,
		Selectable:   map[string]bool{"2025-04-01": true},
		SelectPrefix: "select_date:",
	}

	markup := grid.Markup()
	require.True(t, len(markup.InlineKeyboard) >= 3)

	// Строка 0 - заголовок месяца, строка 1 - дни недели, строка 2 - первая неделя
	weekRow := markup.InlineKeyboard[2]
	require.Len(t, weekRow, 7)
	assert.Equal(t, " ", weekRow[0].Text)
	assert.Equal(t, "1", weekRow[1].Text)
	assert.Equal(t, "select_date:2025-04-01", weekRow[1].CallbackData)
}

func TestMonthGridNavigation(t *testing.T) {
	base := MonthGrid{Year: 2025, Month: time.April, NavPrefix: "user_calendar:"}

	collect := func(g MonthGrid) []string {
		var data []string
		for _, row := range g.Markup().InlineKeyboard {
			for _, btn := range row {
				data = append(data, btn.CallbackData)
			}
		}
		return data
	}

	t.Run("no arrows without adjacent months", func(t *testing.T) {
		data := collect(base)
		assert.NotContains(t, data, "user_calendar:2025-03")
		assert.NotContains(t, data, "user_calendar:2025-05")
	})

	t.Run("both arrows", func(t *testing.T) {
		g := base
		g.HasPrev = true
		g.HasNext = true
		data := collect(g)
		assert.Contains(t, data, "user_calendar:2025-03")
		assert.Contains(t, data, "user_calendar:2025-05")
	})

	t.Run("year boundary", func(t *testing.T) {
		g := MonthGrid{Year: 2025, Month: time.January, NavPrefix: "user_calendar:", HasPrev: true, HasNext: true}
		data := collect(g)
		assert.Contains(t, data, "user_calendar:2024-12")
		assert.Contains(t, data, "user_calendar:2025-02")
	})
}

func TestMonthGridBackButton(t *testing.T) {
	g := MonthGrid{Year: 2025, Month: time.April, BackCallback: "back_to_main"}
	markup := g.Markup()

	lastRow := markup.InlineKeyboard[len(markup.InlineKeyboard)-1]
	require.Len(t, lastRow, 1)
	assert.Equal(t, "back_to_main", lastRow[0].CallbackData)
}

func TestDatesToSet(t *testing.T) {
	dates := []time.Time{
		time.Date(2025, 4, 7, 15, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 7, 18, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 8, 10, 0, 0, 0, time.UTC),
	}

	set := DatesToSet(dates)
	assert.Len(t, set, 2)
	assert.True(t, set["2025-04-07"])
	assert.True(t, set["2025-04-08"])
}

func TestMonthHasDates(t *testing.T) {
	set := map[string]bool{
		"2025-04-07": true,
		"2025-12-31": true,
	}

	assert.True(t, MonthHasDates(set, 2025, time.April))
	assert.True(t, MonthHasDates(set, 2025, time.December))
	assert.False(t, MonthHasDates(set, 2025, time.May))
	assert.False(t, MonthHasDates(set, 2024, time.April))
}

func TestDateRangeSet(t *testing.T) {
	from := time.Date(2025, 4, 28, 12, 0, 0, 0, time.Local)
	to := time.Date(2025, 5, 2, 9, 0, 0, 0, time.Local)

	set := DateRangeSet(from, to)
	assert.Len(t, set, 5)
	assert.True(t, set["2025-04-28"])
	assert.True(t, set["2025-05-02"])
	assert.False(t, set["2025-05-03"])
}
