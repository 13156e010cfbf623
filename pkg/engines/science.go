package engines

import (
	"strings"

	"github.com/DMWllc/netragpt/pkg/textmatch"
)

// The science engines are template-and-branch responders: each holds a small
// topic table and answers only what it recognizes. Anything else returns nil
// and falls through to the general LLM path.

type topicEntry struct {
	keywords textmatch.KeywordSet
	content  Content
}

type topicEngine struct {
	name   string
	topics []topicEntry
}

func (e *topicEngine) Name() string { return e.name }

func (e *topicEngine) Process(message string) *Content {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	for _, topic := range e.topics {
		if topic.keywords.ContainsAny(message) {
			c := topic.content
			return &c
		}
	}
	return nil
}

func NewPhysicsEngine() Engine {
	return &topicEngine{
		name: "physics",
		topics: []topicEntry{
			{
				keywords: textmatch.KeywordSet{"projectile", "trajectory"},
				content: Content{
					Title: "Projectile Motion",
					Body:  "A projectile follows a parabolic path under gravity alone. Horizontal velocity stays constant while vertical velocity changes by g ≈ 9.8 m/s² each second.",
					Steps: []string{
						"Range: R = v² · sin(2θ) / g",
						"Maximum height: H = v² · sin²(θ) / (2g)",
						"Time of flight: T = 2v · sin(θ) / g",
					},
				},
			},
			{
				keywords: textmatch.KeywordSet{"newton", "force", "momentum"},
				content: Content{
					Title: "Newton's Laws and Momentum",
					Body:  "Force equals mass times acceleration (F = ma). Momentum p = mv is conserved in any closed system.",
					Steps: []string{
						"First law: a body keeps its velocity unless a net force acts",
						"Second law: F = ma",
						"Third law: every action has an equal and opposite reaction",
					},
				},
			},
			{
				keywords: textmatch.KeywordSet{"circuit", "voltage", "ohm"},
				content: Content{
					Title: "Basic Circuits",
					Body:  "Ohm's law relates voltage, current, and resistance: V = IR. Power dissipated is P = VI.",
				},
			},
			{
				keywords: textmatch.KeywordSet{"gravity", "free fall", "acceleration"},
				content: Content{
					Title: "Gravity and Free Fall",
					Body:  "Near Earth's surface every object accelerates downward at g ≈ 9.8 m/s², independent of its mass. Distance fallen from rest: d = ½gt².",
				},
			},
		},
	}
}

func NewChemistryEngine() Engine {
	return &topicEngine{
		name: "chemistry",
		topics: []topicEntry{
			{
				keywords: textmatch.KeywordSet{"acid", "base", "ph"},
				content: Content{
					Title: "Acids, Bases, and pH",
					Body:  "The pH scale runs 0-14. Acids donate protons (pH < 7), bases accept them (pH > 7), and 7 is neutral.",
					Steps: []string{
						"pH = -log₁₀[H⁺]",
						"Strong acids dissociate completely in water",
					},
				},
			},
			{
				keywords: textmatch.KeywordSet{"periodic table", "element", "electron configuration"},
				content: Content{
					Title: "The Periodic Table",
					Body:  "Elements are ordered by atomic number. Groups share valence electron counts, which drive similar chemical behavior down a column.",
				},
			},
			{
				keywords: textmatch.KeywordSet{"bond", "covalent", "ionic", "molecule"},
				content: Content{
					Title: "Chemical Bonding",
					Body:  "Ionic bonds transfer electrons between a metal and a nonmetal; covalent bonds share electron pairs between nonmetals.",
				},
			},
			{
				keywords: textmatch.KeywordSet{"reaction", "balance", "stoichiometry"},
				content: Content{
					Title: "Chemical Reactions",
					Body:  "A balanced equation conserves each element's atom count. Stoichiometric ratios convert between moles of reactants and products.",
				},
			},
		},
	}
}

func NewBiologyEngine() Engine {
	return &topicEngine{
		name: "biology",
		topics: []topicEntry{
			{
				keywords: textmatch.KeywordSet{"photosynthesis"},
				content: Content{
					Title: "Photosynthesis",
					Body:  "Plants convert light, water, and CO₂ into glucose and oxygen inside chloroplasts.",
					Steps: []string{
						"6CO₂ + 6H₂O + light → C₆H₁₂O₆ + 6O₂",
						"Light reactions capture energy; the Calvin cycle fixes carbon",
					},
				},
			},
			{
				keywords: textmatch.KeywordSet{"cell", "mitosis", "organelle"},
				content: Content{
					Title: "Cells and Division",
					Body:  "The cell is the basic unit of life. Mitosis produces two identical daughter cells through prophase, metaphase, anaphase, and telophase.",
				},
			},
			{
				keywords: textmatch.KeywordSet{"dna", "gene", "protein"},
				content: Content{
					Title: "DNA and Proteins",
					Body:  "DNA stores genetic information as base pairs. Transcription copies genes to mRNA; translation builds proteins from that message.",
				},
			},
			{
				keywords: textmatch.KeywordSet{"ecosystem", "evolution", "natural selection"},
				content: Content{
					Title: "Ecosystems and Evolution",
					Body:  "Populations evolve when heritable variation meets differential survival. Energy flows through ecosystems from producers to consumers.",
				},
			},
		},
	}
}
