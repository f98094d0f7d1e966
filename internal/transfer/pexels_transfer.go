package transfer

type PexelsVideoFile struct {
	Link string `json:"link"`
}

type PexelsUser struct {
	Name string `json:"name"`
}

type PexelsVideo struct {
	ID         int64             `json:"id"`
	Image      string            `json:"image"`
	Duration   int               `json:"duration"`
	User       PexelsUser        `json:"user"`
	VideoFiles []PexelsVideoFile `json:"video_files"`
}

type PexelsSearchResponse struct {
	Videos []PexelsVideo `json:"videos"`
}
