package services

import "wardrobeapi/models"

// FilterDetections drops detections below threshold and keeps at most max of
// the rest. Collaborator order is preserved; the list is not re-sorted by
// confidence before truncation.
func FilterDetections(items []models.ClothingItem, threshold float64, max int) []models.ClothingItem {
	if max <= 0 {
		return []models.ClothingItem{}
	}
	filtered := make([]models.ClothingItem, 0, min(len(items), max))
	for _, item := range items {
		if len(filtered) >= max {
			break
		}
		if item.Confidence >= threshold {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
