package database

import (
	"fmt"
	"log"

	"dramastream/internal/models"

	"gorm.io/gorm"
)

const sampleVideo = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4"

// Seed populates the catalog on an empty database. Failures are logged and
// swallowed so a half-seeded catalog never blocks startup.
func Seed(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Genre{}).Count(&count).Error; err == nil && count == 0 {
		genres := []models.Genre{
			{Name: "Romance", IconName: "heart", ColorStart: "#FF6B9D", ColorEnd: "#C44569"},
			{Name: "Drama", IconName: "film", ColorStart: "#A55EEA", ColorEnd: "#8854D0"},
			{Name: "Thriller", IconName: "zap", ColorStart: "#4B7BEC", ColorEnd: "#3867D6"},
			{Name: "Comedy", IconName: "smile", ColorStart: "#FED330", ColorEnd: "#F7B731"},
			{Name: "Action", IconName: "target", ColorStart: "#FC5C65", ColorEnd: "#EB3B5A"},
			{Name: "Mystery", IconName: "search", ColorStart: "#26DE81", ColorEnd: "#20BF6B"},
			{Name: "Fantasy", IconName: "star", ColorStart: "#45AAF2", ColorEnd: "#2D98DA"},
			{Name: "Horror", IconName: "moon", ColorStart: "#2C3A47", ColorEnd: "#1E272E"},
		}
		if err := db.Create(&genres).Error; err != nil {
			log.Printf("[Seed] genres: %v", err)
		}
	}

	if err := db.Model(&models.Series{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	seriesData := []models.Series{
		{
			Title:          "Forbidden Hearts",
			Description:    "Two rival families, one forbidden love. A tale of passion that defies all boundaries.",
			CoverImageURL:  "https://images.unsplash.com/photo-1518199266791-5375a83190b7?w=800&h=1200&fit=crop",
			PosterImageURL: "https://images.unsplash.com/photo-1518199266791-5375a83190b7?w=400&h=600&fit=crop",
			Genres:         `["Romance","Drama"]`,
			TotalEpisodes:  45, FreeEpisodes: 5, ReleaseYear: 2025, Rating: 4.8,
			IsTrending: true, IsNew: true, IsFeatured: true, ViewCount: 125000,
		},
		{
			Title:          "The Dark Heir",
			Description:    "When a billionaire dies mysteriously, his hidden heir must navigate a web of lies and betrayal.",
			CoverImageURL:  "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=800&h=1200&fit=crop",
			PosterImageURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=600&fit=crop",
			Genres:         `["Thriller","Mystery"]`,
			TotalEpisodes:  60, FreeEpisodes: 3, ReleaseYear: 2025, Rating: 4.9,
			IsTrending: true, IsFeatured: true, ViewCount: 185000,
		},
		{
			Title:          "Campus Crush",
			Description:    "College life gets complicated when the nerdy girl catches the attention of the campus heartthrob.",
			CoverImageURL:  "https://images.unsplash.com/photo-1523050854058-8df90110c9f1?w=800&h=1200&fit=crop",
			PosterImageURL: "https://images.unsplash.com/photo-1523050854058-8df90110c9f1?w=400&h=600&fit=crop",
			Genres:         `["Romance","Comedy"]`,
			TotalEpisodes:  50, FreeEpisodes: 5, ReleaseYear: 2024, Rating: 4.6,
			IsNew: true, ViewCount: 89000,
		},
		{
			Title:          "Revenge of the Queen",
			Description:    "After being betrayed, she returns stronger to reclaim everything that was taken from her.",
			CoverImageURL:  "https://images.unsplash.com/photo-1531746020798-e6953c6e8e04?w=800&h=1200&fit=crop",
			PosterImageURL: "https://images.unsplash.com/photo-1531746020798-e6953c6e8e04?w=400&h=600&fit=crop",
			Genres:         `["Drama","Thriller"]`,
			TotalEpisodes:  70, FreeEpisodes: 3, ReleaseYear: 2024, Rating: 4.9,
			IsTrending: true, IsFeatured: true, ViewCount: 210000,
		},
	}
	for i := range seriesData {
		s := &seriesData[i]
		if err := db.Create(s).Error; err != nil {
			log.Printf("[Seed] series %q: %v", s.Title, err)
			continue
		}
		eps := make([]models.Episode, 0, s.TotalEpisodes)
		for n := 1; n <= s.TotalEpisodes; n++ {
			unlockType := "premium"
			if n <= s.FreeEpisodes {
				unlockType = "free"
			} else if n <= s.FreeEpisodes+5 {
				unlockType = "ad"
			}
			eps = append(eps, models.Episode{
				SeriesID:      s.ID,
				EpisodeNumber: n,
				Title:         fmt.Sprintf("Episode %d", n),
				ThumbnailURL:  fmt.Sprintf("https://picsum.photos/seed/%d-%d/400/225", s.ID, n),
				VideoURL:      sampleVideo,
				Duration:      90 + (n*37)%90,
				IsLocked:      n > s.FreeEpisodes,
				UnlockType:    unlockType,
			})
		}
		if err := db.Create(&eps).Error; err != nil {
			log.Printf("[Seed] episodes for %q: %v", s.Title, err)
		}
	}
	log.Printf("[Seed] catalog seeded with %d series", len(seriesData))
}
