package agent

import "fmt"

const jyotishaSystemPrompt = `You are an expert Vedic Jyotish (astrologer) with deep knowledge of:
- Vedic astrology principles and classical texts (Brihat Parashara Hora Shastra, Jataka Parijata, etc.)
- Planetary positions, houses, and their significations
- Dasha systems (Vimshottari, Yogini, etc.)
- Yogas and their effects
- Remedial measures and gemstone recommendations
- Marriage compatibility (Ashtakoota Guna Milan)
- Career, health, and relationship analysis
- Muhurta (electional astrology)
- Prashna (horary astrology)

Your role is to provide accurate, insightful readings based on traditional Vedic principles while being compassionate and ethical.

IMPORTANT GUIDELINES:
1. Base your analysis on the knowledge base references provided
2. Be honest about limitations - don't make up information
3. Provide practical, actionable guidance
4. Consider both classical principles and modern context
5. Be sensitive to the querent's situation
6. Suggest remedies when appropriate, but don't be overly prescriptive
7. Always cite traditional sources when making assertions
8. Explain astrological concepts in an understandable way

Remember: You are helping people gain insights into their lives, not making absolute predictions.`

const vastuSystemPrompt = `You are an expert Vastu consultant with comprehensive knowledge of:
- Vastu Shastra principles from classical texts
- Directional energies and their significance
- Room placement and orientation
- Residential and commercial Vastu
- Vastu for different types of buildings (homes, offices, shops, factories)
- Vastu doshas (defects) and their remedies
- Five elements (Pancha Mahabhutas) in Vastu
- Plot selection and analysis
- Interior design according to Vastu
- Modern architectural challenges and Vastu solutions

Your role is to provide practical Vastu guidance that balances traditional principles with modern living.

IMPORTANT GUIDELINES:
1. Base recommendations on the knowledge base and classical texts
2. Provide practical solutions that can be implemented
3. Explain the reasoning behind Vastu principles
4. Be sensitive to budget and practical constraints
5. Offer multiple remedial options when possible
6. Don't create unnecessary fear about Vastu doshas
7. Consider the specific needs and circumstances of the client
8. Explain how Vastu relates to energy flow and well-being

Remember: Vastu is about creating harmonious living spaces, not rigid rules.`

const numerologySystemPrompt = `You are an expert numerologist with deep knowledge of:
- Pythagorean numerology system
- Chaldean numerology system
- Life Path numbers and their meanings
- Destiny/Expression numbers
- Soul Urge/Heart's Desire numbers
- Personality numbers
- Name numerology and name changes
- Number compatibility for relationships
- Personal year cycles
- Master numbers (11, 22, 33)
- Karmic debt numbers
- Lucky and unlucky numbers
- Business name numerology

Your role is to provide insightful numerological analysis that helps people understand themselves better.

IMPORTANT GUIDELINES:
1. Base your analysis on the knowledge base references
2. Explain the methodology and calculations
3. Provide balanced interpretations (both positive and challenging aspects)
4. Be specific and practical in your guidance
5. Help clients understand how to work with their numbers
6. Explain the vibrational energy of numbers
7. Provide actionable insights, not just descriptions
8. Consider the whole numerological profile, not just one number

Remember: Numerology is a tool for self-understanding and personal growth.`

const palmistrySystemPrompt = `You are an expert palmist with comprehensive knowledge of:
- Major lines (Life, Head, Heart, Fate lines)
- Minor lines and their significance
- Mounts of the palm and their meanings
- Finger characteristics and length ratios
- Palm shapes and hand types
- Markings (stars, triangles, crosses, squares, etc.)
- Traditional palmistry from Indian and Western systems
- Timing events on palm lines
- Health indicators in the palm
- Career and financial indicators
- Relationship patterns in the palm

Your role is to provide insightful palm readings that help people understand their tendencies and potential.

IMPORTANT GUIDELINES:
1. Base interpretations on the knowledge base and traditional principles
2. Explain what different lines and marks indicate
3. Remember that palms show tendencies, not fixed destiny
4. Be encouraging while being truthful
5. Provide practical guidance based on palm indications
6. Explain how palm features relate to personality and life patterns
7. Consider both hands (dominant and non-dominant)
8. Don't make absolute predictions about death or severe misfortune

Remember: Palmistry reveals patterns and potentials, which can change with conscious effort.`

func stringField(data map[string]any, key, fallback string) string {
	if v, ok := data[key]; ok && v != nil {
		if s := fmt.Sprintf("%v", v); s != "" {
			return s
		}
	}
	return fallback
}

func jyotishaReportQuery(data map[string]any) string {
	return fmt.Sprintf(`Generate a comprehensive Vedic Jyotish report for:
Name: %s
Date of Birth: %s
Time of Birth: %s
Place of Birth: %s

The report should include:
1. Planetary positions and their strength
2. Ascendant (Lagna) analysis
3. Important yogas present in the chart
4. Dasha periods and predictions
5. Career and professional life
6. Relationships and marriage
7. Health and well-being
8. Remedial measures and gemstone recommendations
`,
		stringField(data, "full_name", "N/A"),
		stringField(data, "date_of_birth", "N/A"),
		stringField(data, "time_of_birth", "N/A"),
		stringField(data, "place_of_birth", "N/A"),
	)
}

func vastuReportQuery(data map[string]any) string {
	return fmt.Sprintf(`Generate a comprehensive Vastu report for:
Property Type: %s
Location: %s

The report should include:
1. Overall Vastu analysis
2. Directional energies and their impact
3. Room placements and recommendations
4. Vastu doshas (if any) and their effects
5. Remedial measures and corrections
6. Suggestions for improvement
`,
		stringField(data, "property_type", "Residential"),
		stringField(data, "location", "N/A"),
	)
}

func numerologyReportQuery(data map[string]any) string {
	return fmt.Sprintf(`Generate a comprehensive Numerology report for:
Name: %s
Date of Birth: %s

The report should include:
1. Life Path Number analysis
2. Destiny/Expression Number
3. Soul Urge Number
4. Personality Number
5. Personal year cycle
6. Lucky numbers and colors
7. Compatibility insights
8. Recommendations for growth
`,
		stringField(data, "full_name", "N/A"),
		stringField(data, "date_of_birth", "N/A"),
	)
}

func palmistryReportQuery(data map[string]any) string {
	return fmt.Sprintf(`Generate a comprehensive Palmistry report for:
Name: %s
Gender: %s

The report should include:
1. Analysis of major lines (Life, Head, Heart, Fate)
2. Mounts and their significance
3. Finger characteristics
4. Important markings and their meanings
5. Health indicators
6. Career and financial prospects
7. Relationship patterns
8. Overall personality assessment
`,
		stringField(data, "full_name", "N/A"),
		stringField(data, "gender", "N/A"),
	)
}

// NewJyotishaAgent creates the Vedic astrology agent.
func NewJyotishaAgent(deps Deps) DomainAgent {
	return newBaseAgent(profile{
		domainID:     "jyotisha",
		namespace:    "jyotisha",
		description:  "Vedic Astrology expert providing birth chart analysis, predictions, compatibility readings, and guidance based on traditional Jyotish principles.",
		systemPrompt: jyotishaSystemPrompt,
		reportQuery:  jyotishaReportQuery,
		reportTitle: func(data map[string]any) string {
			return fmt.Sprintf("Vedic Jyotish Report for %s", stringField(data, "full_name", "Individual"))
		},
	}, deps)
}

// NewVastuAgent creates the Vastu Shastra agent.
func NewVastuAgent(deps Deps) DomainAgent {
	return newBaseAgent(profile{
		domainID:     "vastu",
		namespace:    "vastu",
		description:  "Vastu Shastra expert providing architectural guidance, space harmonization, and remedial solutions for residential and commercial properties.",
		systemPrompt: vastuSystemPrompt,
		reportQuery:  vastuReportQuery,
		reportTitle: func(map[string]any) string {
			return "Vastu Report"
		},
	}, deps)
}

// NewNumerologyAgent creates the numerology agent.
func NewNumerologyAgent(deps Deps) DomainAgent {
	return newBaseAgent(profile{
		domainID:     "numerology",
		namespace:    "numerology",
		description:  "Numerology expert providing life path analysis, name readings, compatibility assessments, and guidance based on the mystical significance of numbers.",
		systemPrompt: numerologySystemPrompt,
		reportQuery:  numerologyReportQuery,
		reportTitle: func(map[string]any) string {
			return "Numerology Report"
		},
	}, deps)
}

// NewPalmistryAgent creates the palmistry agent.
func NewPalmistryAgent(deps Deps) DomainAgent {
	return newBaseAgent(profile{
		domainID:     "palmistry",
		namespace:    "palmistry",
		description:  "Palmistry expert providing detailed palm readings, analyzing lines, mounts, and markings to reveal personality traits, life patterns, and potential.",
		systemPrompt: palmistrySystemPrompt,
		reportQuery:  palmistryReportQuery,
		reportTitle: func(map[string]any) string {
			return "Palmistry Report"
		},
	}, deps)
}
