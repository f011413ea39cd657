package recruitment

type ListQuery struct {
	Search string
	Status string
	// Categories holds the resource's filter columns keyed by name.
	Categories map[string]string
}

type StatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Version *int   `json:"version" binding:"omitempty,min=1"`
}
