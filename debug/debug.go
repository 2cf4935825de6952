// Package debug turns on trace output of the converter. PTK_DEBUG holds a
// comma separated list of topics: encode, decode, policy, compare or all.
package debug

import (
	"os"
	"strings"
)

type topic uint8

const (
	topicEncode topic = 1 << iota
	topicDecode
	topicPolicy
	topicCompare

	topicAll = topicEncode | topicDecode | topicPolicy | topicCompare
)

var on = parseTopics(os.Getenv("PTK_DEBUG"))

func parseTopics(v string) topic {
	var t topic
	for _, name := range strings.Split(v, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "encode":
			t |= topicEncode
		case "decode":
			t |= topicDecode
		case "policy":
			t |= topicPolicy
		case "compare":
			t |= topicCompare
		case "all", "1", "true":
			t |= topicAll
		}
	}
	return t
}

func Encode() bool  { return on&topicEncode != 0 }
func Decode() bool  { return on&topicDecode != 0 }
func Policy() bool  { return on&topicPolicy != 0 }
func Compare() bool { return on&topicCompare != 0 }
