package directory

import (
	"github.com/helixir/academic-profile-service/internal/domain"
)

// PlaceholderIDPrefix marks every placeholder record id.
const PlaceholderIDPrefix = "example-"

// placeholderProfiles returns fresh copies of the sample researcher profiles.
// They are display-only and never persisted.
func placeholderProfiles() []domain.Profile {
	return []domain.Profile{
		{
			ID:                "example-1",
			OwnerID:           "example-1",
			Name:              "Dr. Andrew Ng",
			Title:             "Professor of Computer Science",
			Affiliation:       "Stanford University",
			Email:             "andrew@stanford.edu",
			Bio:               "Leading researcher in machine learning and AI",
			Photo:             "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=200&h=200&fit=crop",
			ResearchInterests: []string{"Machine Learning", "Deep Learning", "AI"},
			Education:         []domain.Education{},
			Contact: domain.Contact{
				Website:       "https://www.andrewng.org",
				GoogleScholar: "https://scholar.google.com/citations?user=example1",
			},
		},
		{
			ID:                "example-2",
			OwnerID:           "example-2",
			Name:              "Dr. Fei-Fei Li",
			Title:             "Professor of Computer Science",
			Affiliation:       "Stanford University",
			Email:             "feifei@stanford.edu",
			Bio:               "Pioneer in computer vision and AI",
			Photo:             "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=200&h=200&fit=crop",
			ResearchInterests: []string{"Computer Vision", "AI", "Neural Networks"},
			Education:         []domain.Education{},
			Contact: domain.Contact{
				Website:       "https://profiles.stanford.edu/fei-fei-li",
				GoogleScholar: "https://scholar.google.com/citations?user=example2",
			},
		},
		{
			ID:                "example-3",
			OwnerID:           "example-3",
			Name:              "Dr. Geoffrey Hinton",
			Title:             "Professor Emeritus",
			Affiliation:       "University of Toronto",
			Email:             "hinton@utoronto.ca",
			Bio:               "Father of deep learning, Turing Award winner",
			Photo:             "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=200&h=200&fit=crop",
			ResearchInterests: []string{"Deep Learning", "Neural Networks", "AI"},
			Education:         []domain.Education{},
			Contact: domain.Contact{
				Website:       "https://www.cs.toronto.edu/~hinton",
				GoogleScholar: "https://scholar.google.com/citations?user=example3",
			},
		},
	}
}

// placeholderPublications returns fresh copies of the sample publications.
func placeholderPublications() []domain.Publication {
	return []domain.Publication{
		{
			ID:        "example-pub-1",
			OwnerID:   "example-1",
			Title:     "Attention Is All You Need",
			Authors:   []string{"A Vaswani", "N Shazeer", "N Parmar", "J Uszkoreit", "L Jones"},
			Journal:   "Advances in Neural Information Processing Systems",
			Year:      2017,
			Citations: 85000,
			Type:      domain.PublicationTypeArticle,
		},
		{
			ID:        "example-pub-2",
			OwnerID:   "example-2",
			Title:     "BERT: Pre-training of Deep Bidirectional Transformers for Language Understanding",
			Authors:   []string{"J Devlin", "M Chang", "K Lee", "K Toutanova"},
			Journal:   "NAACL-HLT",
			Year:      2019,
			Citations: 65000,
			Type:      domain.PublicationTypeArticle,
		},
		{
			ID:        "example-pub-3",
			OwnerID:   "example-3",
			Title:     "ImageNet Classification with Deep Convolutional Neural Networks",
			Authors:   []string{"A Krizhevsky", "I Sutskever", "GE Hinton"},
			Journal:   "Advances in Neural Information Processing Systems",
			Year:      2012,
			Citations: 120000,
			Type:      domain.PublicationTypeArticle,
		},
		{
			ID:        "example-pub-4",
			OwnerID:   "example-1",
			Title:     "Deep Residual Learning for Image Recognition",
			Authors:   []string{"K He", "X Zhang", "S Ren", "J Sun"},
			Journal:   "CVPR",
			Year:      2016,
			Citations: 95000,
			Type:      domain.PublicationTypeArticle,
		},
		{
			ID:        "example-pub-5",
			OwnerID:   "example-2",
			Title:     "Generative Adversarial Networks",
			Authors:   []string{"I Goodfellow", "J Pouget-Abadie", "M Mirza", "B Xu"},
			Journal:   "Advances in Neural Information Processing Systems",
			Year:      2014,
			Citations: 75000,
			Type:      domain.PublicationTypeArticle,
		},
	}
}
