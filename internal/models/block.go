// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// BlockType identifies one of the fixed portfolio section kinds. The set is
// closed: adding a kind means extending the enum and DecodeContent together.
type BlockType string

const (
	BlockHeader       BlockType = "header"
	BlockAbout        BlockType = "about"
	BlockEducation    BlockType = "education"
	BlockExperience   BlockType = "experience"
	BlockSkills       BlockType = "skills"
	BlockProjects     BlockType = "projects"
	BlockAchievements BlockType = "achievements"
	BlockContact      BlockType = "contact"
)

// BlockTypes lists every valid block type in display-catalog order.
var BlockTypes = []BlockType{
	BlockHeader, BlockAbout, BlockEducation, BlockExperience,
	BlockSkills, BlockProjects, BlockAchievements, BlockContact,
}

// Valid reports whether t is a member of the closed block type enum.
func (t BlockType) Valid() bool {
	switch t {
	case BlockHeader, BlockAbout, BlockEducation, BlockExperience,
		BlockSkills, BlockProjects, BlockAchievements, BlockContact:
		return true
	}
	return false
}

// ContentBlock is one section of a portfolio. Content is kept schema-free on
// the wire and in storage so unrecognized keys survive round trips; typed
// views come from DecodeContent. Order must equal the block's array index —
// NormalizeOrder restores that after any structural change.
type ContentBlock struct {
	Type    BlockType      `json:"type"`
	Content map[string]any `json:"content"`
	Order   int            `json:"order"`
}

// NormalizeOrder renumbers blocks so that order matches array position.
// Call it after every add, remove, or move; gaps or duplicates persisting in
// storage are a bug.
func NormalizeOrder(blocks []ContentBlock) {
	for i := range blocks {
		blocks[i].Order = i
	}
}

// HeaderContent holds the recognized fields of a header block.
type HeaderContent struct {
	Title    string
	Subtitle string
	Extra    map[string]any
}

// AboutContent holds the recognized fields of an about block.
type AboutContent struct {
	Description string
	Extra       map[string]any
}

// EducationContent holds the recognized fields of an education block.
type EducationContent struct {
	Institution string
	Degree      string
	Duration    string
	Description string
	Extra       map[string]any
}

// ExperienceContent holds the recognized fields of an experience block.
type ExperienceContent struct {
	Company     string
	Position    string
	Duration    string
	Description string
	Extra       map[string]any
}

// SkillsContent holds the recognized fields of a skills block.
type SkillsContent struct {
	Skills []string
	Extra  map[string]any
}

// ProjectsContent holds the recognized fields of a projects block.
// Features is newline-delimited text, one feature per line.
type ProjectsContent struct {
	ProjectTitle       string
	GithubURL          string
	DemoURL            string
	Duration           string
	ProjectDescription string
	TechStack          []string
	Features           string
	Challenges         string
	Extra              map[string]any
}

// AchievementsContent holds the recognized fields of an achievements block.
type AchievementsContent struct {
	Title       string
	Date        string
	Description string
	Extra       map[string]any
}

// ContactContent holds the recognized fields of a contact block.
type ContactContent struct {
	Email          string
	Phone          string
	Github         string
	Linkedin       string
	Twitter        string
	Instagram      string
	AdditionalInfo string
	Extra          map[string]any
}

// DecodeContent returns the typed view of a block's content. The switch is
// exhaustive over the closed enum; unknown types return nil. Missing or
// malformed fields decode to zero values so renderers can substitute
// placeholders — decoding never fails.
func DecodeContent(b ContentBlock) any {
	switch b.Type {
	case BlockHeader:
		return HeaderContent{
			Title:    str(b.Content, "title"),
			Subtitle: str(b.Content, "subtitle"),
			Extra:    extra(b.Content, "title", "subtitle"),
		}
	case BlockAbout:
		return AboutContent{
			Description: str(b.Content, "description"),
			Extra:       extra(b.Content, "description"),
		}
	case BlockEducation:
		return EducationContent{
			Institution: str(b.Content, "institution"),
			Degree:      str(b.Content, "degree"),
			Duration:    str(b.Content, "duration"),
			Description: str(b.Content, "description"),
			Extra:       extra(b.Content, "institution", "degree", "duration", "description"),
		}
	case BlockExperience:
		return ExperienceContent{
			Company:     str(b.Content, "company"),
			Position:    str(b.Content, "position"),
			Duration:    str(b.Content, "duration"),
			Description: str(b.Content, "description"),
			Extra:       extra(b.Content, "company", "position", "duration", "description"),
		}
	case BlockSkills:
		return SkillsContent{
			Skills: strSlice(b.Content, "skills"),
			Extra:  extra(b.Content, "skills"),
		}
	case BlockProjects:
		return ProjectsContent{
			ProjectTitle:       str(b.Content, "projectTitle"),
			GithubURL:          str(b.Content, "githubUrl"),
			DemoURL:            str(b.Content, "demoUrl"),
			Duration:           str(b.Content, "duration"),
			ProjectDescription: str(b.Content, "projectDescription"),
			TechStack:          strSlice(b.Content, "techStack"),
			Features:           str(b.Content, "features"),
			Challenges:         str(b.Content, "challenges"),
			Extra: extra(b.Content, "projectTitle", "githubUrl", "demoUrl",
				"duration", "projectDescription", "techStack", "features", "challenges"),
		}
	case BlockAchievements:
		return AchievementsContent{
			Title:       str(b.Content, "title"),
			Date:        str(b.Content, "date"),
			Description: str(b.Content, "description"),
			Extra:       extra(b.Content, "title", "date", "description"),
		}
	case BlockContact:
		return ContactContent{
			Email:          str(b.Content, "email"),
			Phone:          str(b.Content, "phone"),
			Github:         str(b.Content, "github"),
			Linkedin:       str(b.Content, "linkedin"),
			Twitter:        str(b.Content, "twitter"),
			Instagram:      str(b.Content, "instagram"),
			AdditionalInfo: str(b.Content, "additionalInfo"),
			Extra: extra(b.Content, "email", "phone", "github",
				"linkedin", "twitter", "instagram", "additionalInfo"),
		}
	}
	return nil
}

// str reads a string field, returning "" for missing or non-string values.
func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// strSlice reads an ordered string sequence, skipping non-string elements.
// JSON decoding produces []any, but a pre-built []string is accepted too.
func strSlice(m map[string]any, key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// extra collects the keys not recognized by the block type. These are
// preserved verbatim but never interpreted.
func extra(m map[string]any, recognized ...string) map[string]any {
	var out map[string]any
	for k, v := range m {
		known := false
		for _, r := range recognized {
			if k == r {
				known = true
				break
			}
		}
		if !known {
			if out == nil {
				out = make(map[string]any)
			}
			out[k] = v
		}
	}
	return out
}
