package render

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"github.com/grishdev/slotbot/internal/model"
	"golang.org/x/image/font/basicfont"
)

// Размеры и отступы картинки недели
const (
	imageWidth      = 1200
	imageHeight     = 800
	headerHeight    = 70
	leftLabelsWidth = 60
	dayPaddingX     = 6.0
	totalDays       = 7

	defaultMinHour = 8
	defaultMaxHour = 21
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	gridColor      = color.RGBA{215, 218, 222, 255}
	textColor      = color.RGBA{80, 85, 90, 255}
	hourLabelColor = color.RGBA{110, 115, 120, 255}

	freeColor      = color.RGBA{170, 220, 170, 255}
	requestedColor = color.RGBA{240, 220, 140, 255}
	confirmedColor = color.RGBA{230, 150, 150, 255}
)

func slotColor(st model.SlotState) color.RGBA {
	switch st {
	case model.SlotStateRequested:
		return requestedColor
	case model.SlotStateConfirmed:
		return confirmedColor
	default:
		return freeColor
	}
}

// WeekImage рисует сетку недели со слотами, раскрашенными по состоянию.
// weekStart - понедельник 00:00. Подписи только латиницей и цифрами:
// basicfont не умеет кириллицу.
func WeekImage(slots []*model.TimeSlot, weekStart time.Time) ([]byte, error) {
	minHour, maxHour := hourBounds(slots)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := float64(imageWidth-leftLabelsWidth) / totalDays
	hourHeight := float64(imageHeight-headerHeight) / float64(maxHour-minHour+1)

	// Заголовки дней
	dc.SetColor(textColor)
	for day := 0; day < totalDays; day++ {
		date := weekStart.AddDate(0, 0, day)
		x := float64(leftLabelsWidth) + dayWidth*float64(day) + dayWidth/2
		dc.DrawStringAnchored(date.Format("Mon 02.01"), x, headerHeight/2, 0.5, 0.5)
	}

	// Часовая сетка и подписи часов
	for hour := minHour; hour <= maxHour+1; hour++ {
		y := float64(headerHeight) + hourHeight*float64(hour-minHour)
		dc.SetColor(gridColor)
		dc.SetLineWidth(1)
		dc.DrawLine(leftLabelsWidth, y, imageWidth, y)
		dc.Stroke()

		if hour <= maxHour {
			dc.SetColor(hourLabelColor)
			dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hour), leftLabelsWidth/2, y+hourHeight/2, 0.5, 0.5)
		}
	}

	// Вертикальные разделители дней
	dc.SetColor(gridColor)
	for day := 0; day <= totalDays; day++ {
		x := float64(leftLabelsWidth) + dayWidth*float64(day)
		dc.DrawLine(x, headerHeight, x, imageHeight)
		dc.Stroke()
	}

	// Слоты
	for _, slot := range slots {
		day := int(slot.StartTime.Sub(weekStart).Hours() / 24)
		if day < 0 || day >= totalDays {
			continue
		}

		startH := float64(slot.StartTime.Hour()) + float64(slot.StartTime.Minute())/60
		endH := float64(slot.EndTime.Hour()) + float64(slot.EndTime.Minute())/60
		if endH <= startH {
			// Слот до полуночи следующего дня обрезаем по концу сетки
			endH = float64(maxHour + 1)
		}

		x := float64(leftLabelsWidth) + dayWidth*float64(day) + dayPaddingX
		y := float64(headerHeight) + hourHeight*(startH-float64(minHour))
		w := dayWidth - 2*dayPaddingX
		h := hourHeight * (endH - startH)

		dc.SetColor(slotColor(slot.State))
		dc.DrawRoundedRectangle(x, y, w, h, 6)
		dc.Fill()

		dc.SetColor(textColor)
		label := fmt.Sprintf("%s-%s", slot.StartTime.Format("15:04"), slot.EndTime.Format("15:04"))
		dc.DrawStringAnchored(label, x+w/2, y+h/2, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}

	return buf.Bytes(), nil
}

// hourBounds подбирает диапазон часов так, чтобы все слоты попали в сетку
func hourBounds(slots []*model.TimeSlot) (int, int) {
	minHour, maxHour := defaultMinHour, defaultMaxHour

	for _, slot := range slots {
		if h := slot.StartTime.Hour(); h < minHour {
			minHour = h
		}
		endH := slot.EndTime.Hour()
		if slot.EndTime.Minute() > 0 {
			endH++
		}
		if endH > maxHour {
			maxHour = endH
		}
	}

	if maxHour > 23 {
		maxHour = 23
	}
	return minHour, maxHour
}
