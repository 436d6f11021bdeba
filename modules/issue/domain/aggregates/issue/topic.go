package issue

import (
	"fmt"

	"github.com/tenancyjustice/clerk/pkg/serrors"
)

// Topic is the category of legal matter. It determines which fileref
// numbering group an issue belongs to.
type Topic string

const (
	TopicRepairs             Topic = "REPAIRS"
	TopicBonds               Topic = "BONDS"
	TopicRentReduction       Topic = "RENT_REDUCTION"
	TopicEvictionArrears     Topic = "EVICTION_ARREARS"
	TopicEvictionRetaliatory Topic = "EVICTION_RETALIATORY"
	TopicHealthCheck         Topic = "HEALTH_CHECK"
	TopicOther               Topic = "OTHER"
)

var AllTopics = []Topic{
	TopicRepairs,
	TopicBonds,
	TopicRentReduction,
	TopicEvictionArrears,
	TopicEvictionRetaliatory,
	TopicHealthCheck,
	TopicOther,
}

var ErrUnknownTopic = serrors.NewError("ISSUE_UNKNOWN_TOPIC", "unknown issue topic", "Topic")

// prefixByTopic aliases topics onto fileref numbering groups. The default is
// the topic's first letter; RENT_REDUCTION files under "C" and the two
// eviction sub-topics share one "E" sequence.
var prefixByTopic = map[Topic]string{
	TopicRepairs:             "R",
	TopicBonds:               "B",
	TopicRentReduction:       "C",
	TopicEvictionArrears:     "E",
	TopicEvictionRetaliatory: "E",
	TopicHealthCheck:         "H",
	TopicOther:               "O",
}

func init() {
	// A topic added without a prefix entry would silently break fileref
	// allocation; refuse to start instead.
	for _, t := range AllTopics {
		if _, ok := prefixByTopic[t]; !ok {
			panic(fmt.Sprintf("issue: topic %s has no fileref prefix entry", t))
		}
	}
	if len(prefixByTopic) != len(AllTopics) {
		panic("issue: prefix table has entries for unknown topics")
	}
}

func ParseTopic(raw string) (Topic, error) {
	t := Topic(raw)
	if _, ok := prefixByTopic[t]; !ok {
		return "", ErrUnknownTopic
	}
	return t, nil
}

// Prefix returns the fileref numbering-group letter for a topic. Topics are
// validated at init time, so an unknown value here is a programming error.
func (t Topic) Prefix() string {
	p, ok := prefixByTopic[t]
	if !ok {
		panic(fmt.Sprintf("issue: no fileref prefix for topic %s", t))
	}
	return p
}

// Prefixes returns the distinct numbering-group letters in use.
func Prefixes() []string {
	seen := make(map[string]bool, len(prefixByTopic))
	out := make([]string, 0, len(prefixByTopic))
	for _, t := range AllTopics {
		p := prefixByTopic[t]
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
