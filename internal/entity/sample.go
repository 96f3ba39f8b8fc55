package entity

import "github.com/alexanderramin/parish/internal/domain"

// RootID is the id of the parish root in the sample directory.
const RootID = "0"

func node(id string, kind domain.EntityKind, title, parent string, children ...string) domain.EntityNode {
	n := domain.EntityNode{ID: id, Kind: kind, Title: title, ChildIDs: children}
	if parent != "" {
		n.ParentID = &parent
	}
	return n
}

// SampleParish returns the parish directory as published on the website.
func SampleParish() Store {
	nodes := []domain.EntityNode{
		node(RootID, domain.KindOrganization, "St. Mary's Parish", "", "ministries", "sacraments", "community"),

		node("ministries", domain.KindCategory, "Ministries", RootID, "liturgy", "music", "youth", "outreach"),
		node("liturgy", domain.KindGroup, "Liturgical Ministries", "ministries", "altar-servers", "lectors", "eucharistic-ministers"),
		node("altar-servers", domain.KindActivity, "Altar Servers", "liturgy"),
		node("lectors", domain.KindActivity, "Lectors", "liturgy"),
		node("eucharistic-ministers", domain.KindActivity, "Extraordinary Ministers of Holy Communion", "liturgy"),
		node("music", domain.KindGroup, "Music Ministry", "ministries", "choir", "cantors"),
		node("choir", domain.KindActivity, "Parish Choir", "music"),
		node("cantors", domain.KindActivity, "Cantors", "music"),
		node("youth", domain.KindGroup, "Youth Ministry", "ministries", "youth-group", "confirmation-prep"),
		node("youth-group", domain.KindActivity, "Youth Group", "youth"),
		node("confirmation-prep", domain.KindActivity, "Confirmation Preparation", "youth"),
		node("outreach", domain.KindGroup, "Outreach", "ministries", "food-pantry", "st-vincent-de-paul"),
		node("food-pantry", domain.KindActivity, "Food Pantry", "outreach"),
		node("st-vincent-de-paul", domain.KindActivity, "St. Vincent de Paul Society", "outreach"),

		node("sacraments", domain.KindCategory, "Sacraments", RootID, "baptism", "reconciliation", "marriage"),
		node("baptism", domain.KindActivity, "Baptism", "sacraments"),
		node("reconciliation", domain.KindActivity, "Reconciliation", "sacraments"),
		node("marriage", domain.KindActivity, "Marriage Preparation", "sacraments"),

		node("community", domain.KindCategory, "Community Life", RootID, "knights", "womens-guild"),
		node("knights", domain.KindGroup, "Knights of Columbus", "community"),
		node("womens-guild", domain.KindGroup, "Women's Guild", "community"),
	}

	attrs := map[string]domain.Attributes{
		RootID: {
			Phone:    "(555) 010-2000",
			Email:    "office@stmarys.example",
			Location: "100 Church Street",
		},
		"altar-servers": {
			Contact:      "Deacon Tom Reyes",
			Schedule:     "Training first Saturday of each month, 10:00",
			AgeGroup:     "Grades 4-12",
			Requirements: []string{"First Communion received", "Attend one training session"},
			Image:        "/images/ministries/altar-servers.jpg",
		},
		"lectors": {
			Contact:      "Maria Lopez",
			Requirements: []string{"Confirmed Catholic", "Lector workshop"},
		},
		"choir": {
			Contact:  "Music Director",
			Schedule: "Rehearsal Thursdays 19:00",
			Location: "Choir loft",
		},
		"youth-group": {
			Schedule: "Sundays 18:30 after Youth Mass",
			AgeGroup: "Grades 9-12",
			Location: "Parish Hall",
		},
		"food-pantry": {
			Schedule: "Wednesdays and Saturdays 09:00-12:00",
			Location: "Parish Hall basement",
			Phone:    "(555) 010-2015",
		},
		"baptism": {
			Requirements: []string{"Parent preparation class", "Godparent sponsor certificate"},
		},
		"reconciliation": {
			Schedule: "Saturdays 15:30-16:30 or by appointment",
			Location: "Church",
		},
	}
	for i := range nodes {
		if a, ok := attrs[nodes[i].ID]; ok {
			nodes[i].Attributes = &a
		}
	}
	return New(nodes...)
}
