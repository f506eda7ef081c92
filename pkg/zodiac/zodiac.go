package zodiac

import (
	"strings"
	"time"
)

// Sign is a western zodiac sign in lowercase form ("aries" ... "pisces").
type Sign string

const (
	Aries       Sign = "aries"
	Taurus      Sign = "taurus"
	Gemini      Sign = "gemini"
	Cancer      Sign = "cancer"
	Leo         Sign = "leo"
	Virgo       Sign = "virgo"
	Libra       Sign = "libra"
	Scorpio     Sign = "scorpio"
	Sagittarius Sign = "sagittarius"
	Capricorn   Sign = "capricorn"
	Aquarius    Sign = "aquarius"
	Pisces      Sign = "pisces"
)

// Element groups signs into the four classical elements used for
// compatibility scoring.
type Element string

const (
	Fire  Element = "fire"
	Earth Element = "earth"
	Air   Element = "air"
	Water Element = "water"
)

// Signs lists all twelve signs in traditional order.
var Signs = []Sign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

var elements = map[Sign]Element{
	Aries: Fire, Leo: Fire, Sagittarius: Fire,
	Taurus: Earth, Virgo: Earth, Capricorn: Earth,
	Gemini: Air, Libra: Air, Aquarius: Air,
	Cancer: Water, Scorpio: Water, Pisces: Water,
}

// Valid reports whether s is one of the twelve signs.
func Valid(s Sign) bool {
	_, ok := elements[s]
	return ok
}

// ElementOf returns the element of a valid sign.
func ElementOf(s Sign) Element {
	return elements[s]
}

// Title returns the capitalized display form of the sign name.
func (s Sign) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[0])) + string(s[1:])
}

type signRange struct {
	sign                                   Sign
	startMonth, startDay, endMonth, endDay int
}

var signRanges = []signRange{
	{Capricorn, 12, 22, 1, 19},
	{Aquarius, 1, 20, 2, 18},
	{Pisces, 2, 19, 3, 20},
	{Aries, 3, 21, 4, 19},
	{Taurus, 4, 20, 5, 20},
	{Gemini, 5, 21, 6, 20},
	{Cancer, 6, 21, 7, 22},
	{Leo, 7, 23, 8, 22},
	{Virgo, 8, 23, 9, 22},
	{Libra, 9, 23, 10, 22},
	{Scorpio, 10, 23, 11, 21},
	{Sagittarius, 11, 22, 12, 21},
}

// SignForDate returns the western sign for a birth date.
func SignForDate(t time.Time) Sign {
	month, day := int(t.Month()), t.Day()
	for _, r := range signRanges {
		if (month == r.startMonth && day >= r.startDay) || (month == r.endMonth && day <= r.endDay) {
			return r.sign
		}
	}
	return Capricorn
}

// DruidSign returns the Celtic tree sign for a birth date.
func DruidSign(t time.Time) string {
	month, day := int(t.Month()), t.Day()
	switch {
	case (month == 12 && day >= 24) || (month == 1 && day <= 20):
		return "birch"
	case (month == 1 && day >= 21) || (month == 2 && day <= 17):
		return "rowan"
	case (month == 2 && day >= 18) || (month == 3 && day <= 17):
		return "ash"
	case (month == 3 && day >= 18) || (month == 4 && day <= 14):
		return "alder"
	case (month == 4 && day >= 15) || (month == 5 && day <= 12):
		return "willow"
	case (month == 5 && day >= 13) || (month == 6 && day <= 9):
		return "hawthorn"
	case (month == 6 && day >= 10) || (month == 6 && day <= 20):
		return "oak"
	case (month == 7 && day >= 8) || (month == 8 && day <= 4):
		return "holly"
	case (month == 8 && day >= 5) || (month == 9 && day <= 1):
		return "hazel"
	case (month == 9 && day >= 2) || (month == 9 && day <= 29):
		return "vine"
	case (month == 9 && day >= 30) || (month == 10 && day <= 27):
		return "ivy"
	case (month == 10 && day >= 28) || (month == 11 && day <= 24):
		return "reed"
	default:
		return "elder"
	}
}

var chineseAnimals = []string{
	"rat", "ox", "tiger", "rabbit", "dragon", "snake",
	"horse", "goat", "monkey", "rooster", "dog", "pig",
}

// ChineseAnimal returns the Chinese zodiac animal for a birth date.
// The cycle is anchored at 1924 as a rat year.
func ChineseAnimal(t time.Time) string {
	idx := (t.Year() - 1924) % 12
	if idx < 0 {
		idx += 12
	}
	return chineseAnimals[idx]
}
