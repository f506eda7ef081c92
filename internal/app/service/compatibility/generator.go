package compatibility

import (
	"math/rand"
	"strings"

	"github.com/salamene/horoscope-backend/pkg/zodiac"
)

type elementPair struct {
	a, b zodiac.Element
}

// scoreRanges holds the overall score bounds per element pairing. Pairs are
// looked up in both orders; same-element pairs appear once.
var scoreRanges = map[elementPair][2]int{
	{zodiac.Fire, zodiac.Fire}:   {85, 95},
	{zodiac.Fire, zodiac.Air}:    {80, 90},
	{zodiac.Fire, zodiac.Earth}:  {50, 70},
	{zodiac.Fire, zodiac.Water}:  {40, 60},
	{zodiac.Earth, zodiac.Earth}: {80, 90},
	{zodiac.Earth, zodiac.Water}: {75, 85},
	{zodiac.Earth, zodiac.Air}:   {45, 65},
	{zodiac.Air, zodiac.Air}:     {85, 95},
	{zodiac.Air, zodiac.Water}:   {50, 70},
	{zodiac.Water, zodiac.Water}: {80, 90},
}

var previewTemplates = map[elementPair][]string{
	{zodiac.Fire, zodiac.Fire}: {
		"A passionate and dynamic pairing with intense chemistry.",
		"Both share a love for adventure and excitement.",
		"High energy relationship with mutual understanding.",
		"Natural leadership qualities complement each other well.",
		"Spontaneous and energetic partnership with great potential.",
	},
	{zodiac.Fire, zodiac.Air}: {
		"Fire and air create a stimulating and inspiring connection.",
		"Intellectual conversations fuel the passionate fire nature.",
		"Air feeds the fire, creating growth and excitement.",
		"Great balance between action and ideas.",
		"Dynamic partnership with excellent communication.",
	},
	{zodiac.Fire, zodiac.Earth}: {
		"Fire brings excitement while earth provides stability.",
		"Different approaches that can complement or clash.",
		"Earth grounds the fire's impulsiveness with practical wisdom.",
		"Potential for growth if both respect their differences.",
		"Challenging but potentially rewarding combination.",
	},
	{zodiac.Fire, zodiac.Water}: {
		"Steam forms when fire meets water - intense but complicated.",
		"Emotional depth meets passionate energy in complex ways.",
		"Water can either nurture or extinguish the fire's enthusiasm.",
		"Requires patience and understanding from both sides.",
		"Transformative potential with careful emotional navigation.",
	},
	{zodiac.Earth, zodiac.Earth}: {
		"Solid, reliable partnership built on shared values.",
		"Mutual appreciation for stability and security.",
		"Practical approach to life creates lasting bonds.",
		"Strong foundation for long-term commitment.",
		"Steady growth and dependable emotional support.",
	},
	{zodiac.Earth, zodiac.Water}: {
		"Nurturing water helps earth's growth and development.",
		"Emotional depth combines beautifully with practical stability.",
		"Water brings intuition while earth provides grounding.",
		"Natural harmony and mutual support.",
		"Gentle, caring relationship with deep emotional bonds.",
	},
	{zodiac.Earth, zodiac.Air}: {
		"Air brings new ideas while earth provides practical application.",
		"Different communication styles require patience.",
		"Earth's stability can feel limiting to free-flowing air.",
		"Growth possible through mutual respect and understanding.",
		"Challenging but intellectually stimulating combination.",
	},
	{zodiac.Air, zodiac.Air}: {
		"Intellectually stimulating with excellent communication.",
		"Shared love for ideas, conversation, and mental connection.",
		"Freedom and independence respected by both partners.",
		"Social and outgoing partnership with many shared interests.",
		"Light, breezy relationship with intellectual depth.",
	},
	{zodiac.Air, zodiac.Water}: {
		"Air's rationality meets water's emotional intuition.",
		"Different approaches to processing life experiences.",
		"Water's depth can feel overwhelming to logical air.",
		"Potential for beautiful balance with mutual understanding.",
		"Requires emotional intelligence and clear communication.",
	},
	{zodiac.Water, zodiac.Water}: {
		"Deep emotional connection with intuitive understanding.",
		"Psychic-like communication and empathetic bond.",
		"Shared appreciation for emotional depth and sensitivity.",
		"Nurturing, supportive relationship with strong intimacy.",
		"Flow together naturally with profound emotional harmony.",
	},
}

// premiumTemplates covers a subset of pairings; the rest fall back to the
// fire-fire pool, same as the preview fallback path.
var premiumTemplates = map[elementPair][]string{
	{zodiac.Fire, zodiac.Fire}: {
		"For {sign_a} and {sign_b}, 2025 brings an intensely passionate period where both your fiery natures will ignite powerful transformations. Your shared love for adventure and spontaneity creates endless possibilities for growth and excitement. However, be mindful that two strong flames can sometimes compete for oxygen. The key to your success lies in channeling your combined energy toward shared goals rather than individual conquests. In love, expect fireworks but also learn to appreciate quiet moments together. Career collaborations prove especially fruitful during spring months, while summer brings opportunities for travel and expansion. Remember that your mutual independence is a strength, not a threat to your connection. Practice patience during Mercury retrograde periods when communication may spark unnecessary conflicts.",
		"The cosmic alignment of {sign_a} and {sign_b} in 2025 reveals a relationship built on mutual respect for each other's leadership qualities and pioneering spirit. Your shared fire element creates natural harmony, but also potential for dramatic moments when your strong wills clash. This year emphasizes learning to lead together rather than competing for dominance. Your relationship thrives on excitement and new experiences, making this an excellent time for adventures, creative projects, and bold life changes. Financial partnerships show particular promise, as your combined courage attracts abundance. The challenge lies in balancing your individual needs for recognition with your commitment to the partnership. Late autumn brings a significant opportunity to demonstrate your loyalty and support for each other's dreams.",
	},
	{zodiac.Fire, zodiac.Air}: {
		"The dynamic between {sign_a} and {sign_b} in 2025 represents one of the most stimulating and growth-oriented partnerships in astrology. Air feeds fire, meaning your air sign partner's ideas, communication skills, and intellectual curiosity will consistently inspire and energize your fiery nature. This year brings numerous opportunities for learning and expansion through your connection. Your fire provides the motivation and courage to act on the brilliant ideas your air partner generates. Together, you create a perfect balance of inspiration and action. Communication flows effortlessly between you, with conversations that spark new possibilities and adventures. This partnership excels in creative endeavors, business ventures, and social situations. The key to maintaining harmony lies in respecting each other's need for freedom and space to grow.",
		"For {sign_a} and {sign_b}, 2025 marks a year of intellectual and emotional elevation through your partnership. The fire-air combination creates natural chemistry where thoughts become actions and dreams transform into reality. Your air partner brings perspective and objectivity to your passionate fire nature, while you provide the drive and determination to manifest their innovative visions. This year particularly favors communication-based projects, teaching opportunities, and social networking that advances both your goals. Travel features prominently in your relationship story, with journeys that expand your perspectives and strengthen your bond. However, be aware that air can sometimes scatter fire's focused energy, so maintain clear priorities and shared objectives to maximize your potential together.",
	},
	{zodiac.Earth, zodiac.Water}: {
		"The beautiful synergy between {sign_a} and {sign_b} in 2025 creates one of nature's most nurturing and sustainable partnerships. Water nourishes earth, allowing for steady, organic growth in all areas of your relationship. Your earth sign's practical stability provides the perfect container for your water partner's emotional depth and intuitive wisdom. This year emphasizes building something lasting together, whether that's a home, family, business, or creative project. Your combined energies excel at creating beauty, comfort, and security. The water partner's emotional intelligence complements the earth partner's practical problem-solving abilities perfectly. This relationship deepens gradually but profoundly, with each season bringing new layers of understanding and appreciation. Trust develops naturally as both partners prove their reliability and devotion through consistent actions rather than grand gestures.",
		"In 2025, the {sign_a} and {sign_b} partnership demonstrates the power of complementary strengths working in harmony. Earth provides the stable foundation while water offers emotional nourishment and intuitive guidance. This combination excels at creating abundance through patience, persistence, and careful cultivation of resources. Your relationship serves as a sanctuary where both partners can be authentically themselves without judgment or pressure to change. This year brings opportunities to establish traditions, invest in your future together, and create lasting value through your combined efforts. The earth partner learns to trust emotional intelligence, while the water partner gains confidence through practical achievement. Health and wellness initiatives undertaken together show remarkable success, as do investments in property or long-term financial security.",
	},
}

func pairOf(a, b zodiac.Sign) elementPair {
	pair := elementPair{zodiac.ElementOf(a), zodiac.ElementOf(b)}
	if _, ok := scoreRanges[pair]; ok {
		return pair
	}
	return elementPair{pair.b, pair.a}
}

type generatedPair struct {
	Overall     int
	Love        int
	Career      int
	Friendship  int
	PreviewText string
	PremiumText string
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// generatePair produces the scores and texts for a sign pairing. Category
// scores wander around the overall score within fixed bounds, clamped to
// [0, 100].
func generatePair(signA, signB zodiac.Sign) generatedPair {
	pair := pairOf(signA, signB)

	bounds, ok := scoreRanges[pair]
	if !ok {
		bounds = [2]int{50, 70}
	}
	overall := bounds[0] + rand.Intn(bounds[1]-bounds[0]+1)

	previews, ok := previewTemplates[pair]
	if !ok {
		previews = previewTemplates[elementPair{zodiac.Fire, zodiac.Fire}]
	}
	premiums, ok := premiumTemplates[pair]
	if !ok {
		premiums = premiumTemplates[elementPair{zodiac.Fire, zodiac.Fire}]
	}
	premium := premiums[rand.Intn(len(premiums))]
	premium = strings.ReplaceAll(premium, "{sign_a}", signA.Title())
	premium = strings.ReplaceAll(premium, "{sign_b}", signB.Title())

	return generatedPair{
		Overall:     overall,
		Love:        clampScore(overall - 15 + rand.Intn(31)),
		Career:      clampScore(overall - 10 + rand.Intn(21)),
		Friendship:  clampScore(overall - 10 + rand.Intn(21)),
		PreviewText: previews[rand.Intn(len(previews))],
		PremiumText: premium,
	}
}
