package retrieval

import (
	"fmt"
	"strings"

	"portfolio-assistant/internal/profile"
)

// BuildChunks flattens the structured profile into an ordered corpus: the
// personal chunk first, then one chunk per skill group, project and job in
// input order, then the optional photography, cooking and site-page chunks
// when that data is present. IDs are positional, so rebuilding from the same
// profile yields an identical corpus.
//
// Each chunk's text carries every field of its entity so the generation
// model can answer questions about that entity from the one chunk alone.
// Missing optional links render as explicit placeholders rather than being
// dropped, which would leave the text ambiguous.
func BuildChunks(p *profile.Profile) []Chunk {
	var b corpusBuilder

	pers := p.Personal
	b.add("Personal", fmt.Sprintf(
		"Name: %s. Title: %s. Location: %s. Email: %s. GitHub: %s. LinkedIn: %s. Bio: %s. Tagline: %s.",
		pers.Name, pers.Title, pers.Location, pers.Email, pers.GitHub, pers.LinkedIn, pers.Bio, pers.Tagline))

	for _, sg := range p.Skills {
		b.add("Skills – "+sg.Category,
			fmt.Sprintf("%s skills: %s.", sg.Category, strings.Join(sg.Items, ", ")))
	}

	for _, proj := range p.Projects {
		github := proj.GitHub
		if github == "" {
			github = "private"
		}
		demo := proj.Demo
		if demo == "" {
			demo = "none"
		}
		b.add("Project: "+proj.Title, fmt.Sprintf(
			"Project %q (%s): %s Stack: %s. GitHub: %s. Demo: %s.",
			proj.Title, proj.Category, proj.Description, strings.Join(proj.Stack, ", "), github, demo))
	}

	for _, job := range p.WorkExperience {
		b.add(fmt.Sprintf("Experience: %s at %s", job.Role, job.Company), fmt.Sprintf(
			"%s at %s (%s, %s). %s",
			job.Role, job.Company, job.Duration, job.Location, strings.Join(job.Bullets, " ")))
	}

	if len(p.Photography) > 0 {
		var categories, locations []string
		for _, photo := range p.Photography {
			categories = appendUnique(categories, photo.Category)
			locations = appendUnique(locations, photo.Location)
		}
		b.add("Photography Overview", fmt.Sprintf(
			"%s is passionate about photography. His photography covers categories including: %s. He has shot photos in locations such as: %s.",
			pers.Name, strings.Join(categories, ", "), strings.Join(locations, ", ")))
		for _, photo := range p.Photography {
			b.add("Photography: "+photo.Title, fmt.Sprintf(
				"Photograph %q (Type/Category: %s): Shot in %s (%s).",
				photo.Title, photo.Category, photo.Location, photo.Year))
		}
	}

	if len(p.Cooking) > 0 {
		var tags []string
		for _, recipe := range p.Cooking {
			for _, tag := range recipe.Tags {
				tags = appendUnique(tags, tag)
			}
		}
		b.add("Cooking Overview", fmt.Sprintf(
			"%s is passionate about cooking. He makes dishes with styles/tags including: %s.",
			pers.Name, strings.Join(tags, ", ")))
		for _, recipe := range p.Cooking {
			b.add("Cooking: "+recipe.Title, fmt.Sprintf(
				"Recipe %q: %s Tags: %s.",
				recipe.Title, recipe.Description, strings.Join(recipe.Tags, ", ")))
		}
	}

	if len(p.Pages) > 0 {
		b.add("Website Overview", fmt.Sprintf(
			"This portfolio website contains the following pages: %s.", strings.Join(p.Pages, ", ")))
	}

	return b.chunks
}

type corpusBuilder struct {
	chunks []Chunk
}

func (b *corpusBuilder) add(section, text string) {
	b.chunks = append(b.chunks, Chunk{
		ID:      fmt.Sprintf("chunk-%d", len(b.chunks)),
		Section: section,
		Text:    text,
	})
}

func appendUnique(items []string, item string) []string {
	for _, existing := range items {
		if existing == item {
			return items
		}
	}
	return append(items, item)
}
