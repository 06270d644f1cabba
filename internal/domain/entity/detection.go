package entity

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// Классы, которые понимает ядро. Регистр важен.
var RecognizedLabels = []string{
	"Hardhat",
	"Mask",
	"NO-Hardhat",
	"NO-Mask",
	"NO-Safety Vest",
	"Person",
	"Safety Cone",
	"Safety Vest",
	"machinery",
	"vehicle",
}

// ViolationLabels классы, означающие нарушение техники безопасности
var ViolationLabels = []string{
	"NO-Hardhat",
	"NO-Mask",
	"NO-Safety Vest",
}

var recognized = toSet(RecognizedLabels)

var violations = toSet(ViolationLabels)

var ErrMalformedDetection = errors.New("malformed detection")

// BBox ограничивающий прямоугольник (x1, y1) - (x2, y2) в пикселях
type BBox struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

// Area площадь прямоугольника; для вырожденного прямоугольника 0
func (b BBox) Area() int {
	w, h := b.X2-b.X1, b.Y2-b.Y1
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Rect возвращает прямоугольник как image.Rectangle
func (b BBox) Rect() image.Rectangle {
	return image.Rectangle{Min: image.Pt(b.X1, b.Y1), Max: image.Pt(b.X2, b.Y2)}
}

// Center возвращает координаты центра прямоугольника
func (b BBox) Center() (x, y int) {
	return b.X1 + (b.X2-b.X1)/2, b.Y1 + (b.Y2-b.Y1)/2
}

// Detection один объект, найденный детектором на кадре
type Detection struct {
	Box        BBox
	Label      string
	Confidence float64
}

// Validate проверяет обязательные поля детекции
func (d Detection) Validate() error {
	if d.Box.X1 >= d.Box.X2 || d.Box.Y1 >= d.Box.Y2 {
		return fmt.Errorf("%w: bad box %v", ErrMalformedDetection, d.Box)
	}
	if math.IsNaN(d.Confidence) || d.Confidence < 0 || d.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v out of range", ErrMalformedDetection, d.Confidence)
	}
	if d.Label == "" {
		return fmt.Errorf("%w: empty label", ErrMalformedDetection)
	}
	return nil
}

// Caption подпись над рамкой, например "Person 0.87"
func (d Detection) Caption() string {
	return fmt.Sprintf("%s %.2f", d.Label, d.Confidence)
}

// IsRecognized true для классов из RecognizedLabels
func IsRecognized(label string) bool {
	_, ok := recognized[label]
	return ok
}

// IsViolation true для классов-нарушений
func IsViolation(label string) bool {
	_, ok := violations[label]
	return ok
}

func toSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}
