package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobeapi/models"
)

func detections(confidences ...float64) []models.ClothingItem {
	items := make([]models.ClothingItem, len(confidences))
	for i, confidence := range confidences {
		items[i] = models.ClothingItem{ID: fmt.Sprintf("item-%d", i), Type: models.ClothingTypeTop, Confidence: confidence}
	}
	return items
}

func TestFilterDetectionsKeepsConfidentItemsInOrder(t *testing.T) {
	items := detections(0.95, 0.40, 0.90, 0.86, 0.85, 0.84, 0.99, 0.10, 0.88, 0.91, 0.50, 0.97)

	filtered := FilterDetections(items, 0.85, 10)

	ids := make([]string, len(filtered))
	for i, item := range filtered {
		ids[i] = item.ID
		assert.GreaterOrEqual(t, item.Confidence, 0.85)
	}
	assert.Equal(t, []string{"item-0", "item-2", "item-3", "item-4", "item-6", "item-8", "item-9", "item-11"}, ids)
}

func TestFilterDetectionsCapsWithoutResorting(t *testing.T) {
	items := detections(0.90, 0.99, 0.95, 0.97)

	filtered := FilterDetections(items, 0.85, 2)

	require.Len(t, filtered, 2)
	assert.Equal(t, "item-0", filtered[0].ID)
	assert.Equal(t, "item-1", filtered[1].ID)
}

func TestFilterDetectionsLengthIsMinOfCapAndPassing(t *testing.T) {
	items := detections(0.9, 0.9, 0.9, 0.2, 0.9)
	for max := 0; max <= 6; max++ {
		assert.Len(t, FilterDetections(items, 0.85, max), min(max, 4), "max=%d", max)
	}
}

func TestFilterDetectionsEdges(t *testing.T) {
	assert.Empty(t, FilterDetections(nil, 0.85, 10))
	assert.NotNil(t, FilterDetections(nil, 0.85, 10))
	assert.Empty(t, FilterDetections(detections(0.99), 0.85, -1))
	assert.Len(t, FilterDetections(detections(0, 0.5), 0, 10), 2)
	assert.Len(t, FilterDetections(detections(0.99, 1), 1, 10), 1)
}
