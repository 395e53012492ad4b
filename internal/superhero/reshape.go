package superhero

import (
	"strings"

	"fandomexplorer/pkg/models"
	"fandomexplorer/pkg/utils"
)

const (
	unknownPublisher = "Unknown"
	neutralAlignment = "neutral"
	placeholder      = "-"
	missingStat      = "null"
)

// orDefault treats blank strings and the upstream's "null" as missing.
func orDefault(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return def
	}
	return s
}

func listOrDefault(v []string, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}

func (s *Service) imageFor(id string, img *rawImage) string {
	raw := ""
	if img != nil {
		raw = orDefault(img.URL, "")
	}
	if raw == "" {
		raw = utils.CharacterCDNURL(id)
	}
	return utils.ProxyImageURL(s.imageProxy, raw)
}

func (s *Service) toSummary(rc rawCharacter) models.CharacterSummary {
	publisher, alignment := unknownPublisher, neutralAlignment
	if rc.Biography != nil {
		publisher = orDefault(rc.Biography.Publisher, unknownPublisher)
		alignment = orDefault(rc.Biography.Alignment, neutralAlignment)
	}
	return models.CharacterSummary{
		ID:        rc.ID,
		Name:      rc.Name,
		Image:     s.imageFor(rc.ID, rc.Image),
		Publisher: publisher,
		Alignment: alignment,
	}
}

func (s *Service) toDetail(rc rawCharacter) models.CharacterDetail {
	ps := rc.Powerstats
	if ps == nil {
		ps = &rawPowerstats{}
	}
	bio := rc.Biography
	if bio == nil {
		bio = &rawBiography{}
	}
	app := rc.Appearance
	if app == nil {
		app = &rawAppearance{}
	}
	work := rc.Work
	if work == nil {
		work = &rawWork{}
	}
	conn := rc.Connections
	if conn == nil {
		conn = &rawConnections{}
	}

	return models.CharacterDetail{
		ID:    rc.ID,
		Name:  rc.Name,
		Image: s.imageFor(rc.ID, rc.Image),
		Powerstats: models.Powerstats{
			Intelligence: orDefault(ps.Intelligence, missingStat),
			Strength:     orDefault(ps.Strength, missingStat),
			Speed:        orDefault(ps.Speed, missingStat),
			Durability:   orDefault(ps.Durability, missingStat),
			Power:        orDefault(ps.Power, missingStat),
			Combat:       orDefault(ps.Combat, missingStat),
		},
		Biography: models.Biography{
			RealName:        orDefault(bio.FullName, ""),
			Aliases:         listOrDefault(bio.Aliases, []string{}),
			PlaceOfBirth:    orDefault(bio.PlaceOfBirth, placeholder),
			FirstAppearance: orDefault(bio.FirstAppearance, placeholder),
			Publisher:       orDefault(bio.Publisher, unknownPublisher),
			Alignment:       orDefault(bio.Alignment, neutralAlignment),
		},
		Appearance: models.Appearance{
			Gender:    orDefault(app.Gender, placeholder),
			Race:      orDefault(app.Race, placeholder),
			Height:    listOrDefault(app.Height, []string{placeholder}),
			Weight:    listOrDefault(app.Weight, []string{placeholder}),
			EyeColor:  orDefault(app.EyeColor, placeholder),
			HairColor: orDefault(app.HairColor, placeholder),
		},
		Work: models.Work{
			Occupation: orDefault(work.Occupation, placeholder),
			Base:       orDefault(work.Base, placeholder),
		},
		Connections: models.Connections{
			ConnectedTo: orDefault(conn.GroupAffiliation, placeholder),
			Relatives:   orDefault(conn.Relatives, placeholder),
		},
	}
}
