// Package catalog holds the built-in fallback dataset used when the live
// metadata source is unavailable or unhelpful.
package catalog

import (
	"fmt"
	"strings"

	"github.com/paperdash/content-service/internal/domain"
)

// entry is one fixed catalog paper before id and category assignment.
type entry struct {
	Title     string
	Authors   []string
	Summary   string
	Link      string
	Published string
}

// papers is the fixed fallback dataset. Order matters: unfiltered fallback
// selections take entries from the front, and ids derive from the index.
var papers = []entry{
	{
		Title:     "Attention Is All You Need",
		Authors:   []string{"Ashish Vaswani", "Noam Shazeer", "Niki Parmar"},
		Summary:   "The dominant sequence transduction models are based on complex recurrent or convolutional neural networks that include an encoder and a decoder. The best performing models also connect the encoder and decoder through an attention mechanism. We propose a new simple network architecture, the Transformer, based solely on attention mechanisms, dispensing with recurrence and convolutions entirely.",
		Link:      "https://arxiv.org/abs/1706.03762",
		Published: "2017-06-12T17:18:52Z",
	},
	{
		Title:     "Deep Residual Learning for Image Recognition",
		Authors:   []string{"Kaiming He", "Xiangyu Zhang", "Shaoqing Ren", "Jian Sun"},
		Summary:   "Deeper neural networks are more difficult to train. We present a residual learning framework to ease the training of networks that are substantially deeper than those used previously. We explicitly reformulate the layers as learning residual functions with reference to the layer inputs, instead of learning unreferenced functions.",
		Link:      "https://arxiv.org/abs/1512.03385",
		Published: "2015-12-10T18:40:12Z",
	},
	{
		Title:     "Generative Adversarial Networks",
		Authors:   []string{"Ian J. Goodfellow", "Jean Pouget-Abadie", "Mehdi Mirza"},
		Summary:   "We propose a new framework for estimating generative models via an adversarial process, in which we simultaneously train two models: a generative model G that captures the data distribution, and a discriminative model D that estimates the probability that a sample came from the training data rather than G.",
		Link:      "https://arxiv.org/abs/1406.2661",
		Published: "2014-06-10T19:55:15Z",
	},
	{
		Title:     "BERT: Pre-training of Deep Bidirectional Transformers for Language Understanding",
		Authors:   []string{"Jacob Devlin", "Ming-Wei Chang", "Kenton Lee", "Kristina Toutanova"},
		Summary:   "We introduce a new language representation model called BERT, which stands for Bidirectional Encoder Representations from Transformers. Unlike recent language representation models, BERT is designed to pre-train deep bidirectional representations from unlabeled text by jointly conditioning on both left and right context in all layers.",
		Link:      "https://arxiv.org/abs/1810.04805",
		Published: "2018-10-11T18:33:37Z",
	},
	{
		Title:     "Mastering the Game of Go with Deep Neural Networks and Tree Search",
		Authors:   []string{"David Silver", "Aja Huang", "Chris J. Maddison"},
		Summary:   "The game of Go has long been viewed as the most challenging of classic games for artificial intelligence owing to its enormous search space and the difficulty of evaluating board positions and moves. Here we introduce a new approach to computer Go that uses 'value networks' to evaluate board positions and 'policy networks' to select moves.",
		Link:      "https://arxiv.org/abs/1712.01815",
		Published: "2017-12-05T18:40:45Z",
	},
	{
		Title:     "Language Models are Few-Shot Learners",
		Authors:   []string{"Tom B. Brown", "Benjamin Mann", "Nick Ryder"},
		Summary:   "Recent work has demonstrated substantial gains on many NLP tasks and benchmarks by pre-training on a large corpus of text followed by fine-tuning on a specific task. While typically task-agnostic in architecture, this method still requires task-specific fine-tuning datasets of thousands or tens of thousands of examples.",
		Link:      "https://arxiv.org/abs/2005.14165",
		Published: "2020-05-28T17:29:03Z",
	},
}

// Size returns the number of entries in the catalog.
func Size() int {
	return len(papers)
}

// Filter selects up to max catalog papers relevant to the query. Relevance
// is a case-insensitive substring match of any whitespace-separated query
// token against the concatenated title and summary. When nothing matches,
// the first max entries are returned unfiltered. Every returned record is
// tagged with the query as its category and carries a catalog-scoped id.
func Filter(query string, max int) []domain.PaperRecord {
	if max < 1 {
		return nil
	}

	tokens := strings.Fields(strings.ToLower(query))

	selected := make([]int, 0, len(papers))
	for i, p := range papers {
		text := strings.ToLower(p.Title + " " + p.Summary)
		if matchesAny(text, tokens) {
			selected = append(selected, i)
		}
	}

	if len(selected) == 0 {
		for i := range papers {
			selected = append(selected, i)
		}
	}

	if len(selected) > max {
		selected = selected[:max]
	}

	records := make([]domain.PaperRecord, 0, len(selected))
	for _, i := range selected {
		p := papers[i]
		records = append(records, domain.PaperRecord{
			ID:          fmt.Sprintf("fallback-%d", i),
			Title:       p.Title,
			Summary:     p.Summary,
			Authors:     append([]string(nil), p.Authors...),
			Link:        p.Link,
			Published:   p.Published,
			Category:    query,
			HasFullText: false,
		})
	}
	return records
}

// matchesAny reports whether any token occurs in text. An empty token list
// matches nothing, which pushes Filter onto its unfiltered path.
func matchesAny(text string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			return true
		}
	}
	return false
}
