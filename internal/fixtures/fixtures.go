// Package fixtures holds hand-checked dependency parses shared by the tests.
//
// Each parse is keyed by its raw text, so Parser can stand in for an external
// parser wherever a test registers documents or runs queries by text.
package fixtures

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/embedding"
	"github.com/poiesic/topicmatch/ontology"
	"github.com/poiesic/topicmatch/parser"
	"github.com/poiesic/topicmatch/parser/conll"
)

// Similarity is the embedding similarity the fixture word pairs share.
const Similarity = 0.7225

// SimilarPairs lists the word pairs with an embedding similarity of Similarity.
var SimilarPairs = [][2]string{
	{"king", "queen"},
	{"car", "automobile"},
}

// VehicleCar is the embedding similarity of "vehicle" and "car".
const VehicleCar = 0.64

// Oracle returns a similarity table over SimilarPairs and vehicle/car.
func Oracle() *embedding.Static {
	s := embedding.NewStatic()
	for _, pair := range SimilarPairs {
		s.Set(pair[0], pair[1], Similarity)
	}
	return s.Set("vehicle", "car", VehicleCar)
}

// Parser resolves fixture texts to their parses.
func Parser() parser.Parser {
	return parser.Func(func(ctx context.Context, text, label string) (*core.Document, error) {
		rows, ok := parses[text]
		if !ok {
			return nil, fmt.Errorf("%w: no fixture for %q", parser.ErrMalformedInput, text)
		}
		return conll.Parser{}.Parse(ctx, rows, label)
	})
}

// Document parses a fixture text and panics when it is unknown.
func Document(text, label string) *core.Document {
	doc, err := Parser().Parse(context.Background(), text, label)
	if err != nil {
		panic(err)
	}
	if doc.Text != text {
		panic(fmt.Sprintf("fixture %q rebuilds as %q", text, doc.Text))
	}
	return doc
}

// Texts returns every fixture text.
func Texts() []string {
	texts := make([]string, 0, len(parses))
	for text := range parses {
		texts = append(texts, text)
	}
	return texts
}

// Animals returns a small ontology: animal over cat and dog, hound a synonym of dog.
func Animals() *ontology.Graph {
	g := ontology.NewGraph()
	g.AddHyponym("animal", "cat")
	g.AddHyponym("animal", "dog")
	g.AddSynonyms("dog", "hound")
	return g
}

func rows(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

var parses = map[string]string{
	"A plant grows": rows(
		"1 A      a     DET  DT  _ 2 det   _ _",
		"2 plant  plant NOUN NN  _ 3 nsubj _ _",
		"3 grows  grow  VERB VBZ _ 0 root  _ _",
	),
	"I saw a plant. It was growing": rows(
		"1 I       I     PRON  PRP _ 2 nsubj _ _",
		"2 saw     see   VERB  VBD _ 0 root  _ _",
		"3 a       a     DET   DT  _ 4 det   _ _",
		"4 plant   plant NOUN  NN  _ 2 dobj  _ Coref=1|SpaceAfter=No",
		"5 .       .     PUNCT .   _ 2 punct _ _",
		"",
		"1 It      it    PRON  PRP _ 3 nsubj _ Coref=1",
		"2 was     be    AUX   VBD _ 3 aux   _ _",
		"3 growing grow  VERB  VBG _ 0 root  _ _",
	),
	"My friend visited ENTITYGPE": rows(
		"1 My        my        PRON  PRP$ _ 2 poss  _ _",
		"2 friend    friend    NOUN  NN   _ 3 nsubj _ _",
		"3 visited   visit     VERB  VBD  _ 0 root  _ _",
		"4 ENTITYGPE ENTITYGPE PROPN NNP  _ 3 dobj  _ _",
	),
	"Peter visited Paris": rows(
		"1 Peter   Peter PROPN NNP _ 2 nsubj _ Ent=PERSON",
		"2 visited visit VERB  VBD _ 0 root  _ _",
		"3 Paris   Paris PROPN NNP _ 2 dobj  _ Ent=GPE",
	),
	"My friend visited ENTITYNOUN": rows(
		"1 My         my         PRON  PRP$ _ 2 poss  _ _",
		"2 friend     friend     NOUN  NN   _ 3 nsubj _ _",
		"3 visited    visit      VERB  VBD  _ 0 root  _ _",
		"4 ENTITYNOUN ENTITYNOUN PROPN NNP  _ 3 dobj  _ _",
	),
	"Peter visited a city": rows(
		"1 Peter   Peter PROPN NNP _ 2 nsubj _ Ent=PERSON",
		"2 visited visit VERB  VBD _ 0 root  _ _",
		"3 a       a     DET   DT  _ 4 det   _ _",
		"4 city    city  NOUN  NN  _ 2 dobj  _ _",
	),
	"I saw a king": rows(
		"1 I    I    PRON PRP _ 2 nsubj _ _",
		"2 saw  see  VERB VBD _ 0 root  _ _",
		"3 a    a    DET  DT  _ 4 det   _ _",
		"4 king king NOUN NN  _ 2 dobj  _ _",
	),
	"Somebody saw a queen": rows(
		"1 Somebody somebody PRON PRP _ 2 nsubj _ _",
		"2 saw      see      VERB VBD _ 0 root  _ _",
		"3 a        a        DET  DT  _ 4 det   _ _",
		"4 queen    queen    NOUN NN  _ 2 dobj  _ _",
	),
	"I saw an animal": rows(
		"1 I      I      PRON PRP _ 2 nsubj _ _",
		"2 saw    see    VERB VBD _ 0 root  _ _",
		"3 an     an     DET  DT  _ 4 det   _ _",
		"4 animal animal NOUN NN  _ 2 dobj  _ _",
	),
	"Somebody saw a cat": rows(
		"1 Somebody somebody PRON PRP _ 2 nsubj _ _",
		"2 saw      see      VERB VBD _ 0 root  _ _",
		"3 a        a        DET  DT  _ 4 det   _ _",
		"4 cat      cat      NOUN NN  _ 2 dobj  _ _",
	),
	"A car with an engine": rows(
		"1 A      a      DET  DT _ 2 det  _ _",
		"2 car    car    NOUN NN _ 0 root _ _",
		"3 with   with   ADP  IN _ 2 prep _ _",
		"4 an     an     DET  DT _ 5 det  _ _",
		"5 engine engine NOUN NN _ 3 pobj 3:pobj|2:pobjp _",
	),
	"An automobile with an engine": rows(
		"1 An         an         DET  DT _ 2 det  _ _",
		"2 automobile automobile NOUN NN _ 0 root _ _",
		"3 with       with       ADP  IN _ 2 prep _ _",
		"4 an         an         DET  DT _ 5 det  _ _",
		"5 engine     engine     NOUN NN _ 3 pobj 3:pobj|2:pobjp _",
	),
	"The donkey paints a roof": rows(
		"1 The    the    DET  DT  _ 2 det   _ _",
		"2 donkey donkey NOUN NN  _ 3 nsubj _ _",
		"3 paints paint  VERB VBZ _ 0 root  _ _",
		"4 a      a      DET  DT  _ 5 det   _ _",
		"5 roof   roof   NOUN NN  _ 3 dobj  _ _",
	),
	"The donkey has a roof": rows(
		"1 The    the    DET  DT  _ 2 det   _ _",
		"2 donkey donkey NOUN NN  _ 3 nsubj _ _",
		"3 has    have   VERB VBZ _ 0 root  _ _",
		"4 a      a      DET  DT  _ 5 det   _ _",
		"5 roof   roof   NOUN NN  _ 3 dobj  _ _",
	),
	"A man walks": rows(
		"1 A     a    DET  DT  _ 2 det   _ _",
		"2 man   man  NOUN NN  _ 3 nsubj _ _",
		"3 walks walk VERB VBZ _ 0 root  _ _",
	),
	"I saw a man. The man walked": rows(
		"1 I      I    PRON  PRP _ 2 nsubj _ _",
		"2 saw    see  VERB  VBD _ 0 root  _ _",
		"3 a      a    DET   DT  _ 4 det   _ _",
		"4 man    man  NOUN  NN  _ 2 dobj  _ Coref=1|SpaceAfter=No",
		"5 .      .    PUNCT .   _ 2 punct _ _",
		"",
		"1 The    the  DET   DT  _ 2 det   _ _",
		"2 man    man  NOUN  NN  _ 3 nsubj _ Coref=1",
		"3 walked walk VERB  VBD _ 0 root  _ _",
	),
	"A big man": rows(
		"1 A   a   DET  DT _ 3 det  _ _",
		"2 big big ADJ  JJ _ 3 amod _ _",
		"3 man man NOUN NN _ 0 root _ _",
	),
	"I saw a big man. The man walked": rows(
		"1 I      I    PRON  PRP _ 2 nsubj _ _",
		"2 saw    see  VERB  VBD _ 0 root  _ _",
		"3 a      a    DET   DT  _ 5 det   _ _",
		"4 big    big  ADJ   JJ  _ 5 amod  _ _",
		"5 man    man  NOUN  NN  _ 2 dobj  _ Coref=1|SpaceAfter=No",
		"6 .      .    PUNCT .   _ 2 punct _ _",
		"",
		"1 The    the  DET   DT  _ 2 det   _ _",
		"2 man    man  NOUN  NN  _ 3 nsubj _ Coref=1",
		"3 walked walk VERB  VBD _ 0 root  _ _",
	),
	"A big dog": rows(
		"1 A   a   DET  DT _ 3 det  _ _",
		"2 big big ADJ  JJ _ 3 amod _ _",
		"3 dog dog NOUN NN _ 0 root _ _",
	),
	"I saw a big dog.": rows(
		"1 I   I   PRON  PRP _ 2 nsubj _ _",
		"2 saw see VERB  VBD _ 0 root  _ _",
		"3 a   a   DET   DT  _ 5 det   _ _",
		"4 big big ADJ   JJ  _ 5 amod  _ _",
		"5 dog dog NOUN  NN  _ 2 dobj  _ SpaceAfter=No",
		"6 .   .   PUNCT .   _ 2 punct _ _",
	),
	"The dog I saw was big.": rows(
		"1 The the DET   DT  _ 2 det   _ _",
		"2 dog dog NOUN  NN  _ 5 nsubj _ _",
		"3 I   I   PRON  PRP _ 4 nsubj _ _",
		"4 saw see VERB  VBD _ 2 relcl _ _",
		"5 was be  AUX   VBD _ 0 root  _ _",
		"6 big big ADJ   JJ  _ 5 acomp 5:acomp|2:amod SpaceAfter=No",
		"7 .   .   PUNCT .   _ 5 punct _ _",
	),
	"The dog chased the cat": rows(
		"1 The    the   DET  DT  _ 2 det   _ _",
		"2 dog    dog   NOUN NN  _ 3 nsubj _ _",
		"3 chased chase VERB VBD _ 0 root  _ _",
		"4 the    the   DET  DT  _ 5 det   _ _",
		"5 cat    cat   NOUN NN  _ 3 dobj  _ _",
	),
	"A dog chased a cat.": rows(
		"1 A      a     DET   DT  _ 2 det   _ _",
		"2 dog    dog   NOUN  NN  _ 3 nsubj _ _",
		"3 chased chase VERB  VBD _ 0 root  _ _",
		"4 a      a     DET   DT  _ 5 det   _ _",
		"5 cat    cat   NOUN  NN  _ 3 dobj  _ SpaceAfter=No",
		"6 .      .     PUNCT .   _ 3 punct _ _",
	),
	"A dog chased a cat. A cat.": rows(
		"1 A      a     DET   DT  _ 2 det   _ _",
		"2 dog    dog   NOUN  NN  _ 3 nsubj _ _",
		"3 chased chase VERB  VBD _ 0 root  _ _",
		"4 a      a     DET   DT  _ 5 det   _ _",
		"5 cat    cat   NOUN  NN  _ 3 dobj  _ SpaceAfter=No",
		"6 .      .     PUNCT .   _ 3 punct _ _",
		"",
		"1 A      a     DET   DT  _ 2 det   _ _",
		"2 cat    cat   NOUN  NN  _ 0 root  _ SpaceAfter=No",
		"3 .      .     PUNCT .   _ 2 punct _ _",
	),
	"Dogs and cats.": rows(
		"1 Dogs dog  NOUN  NNS _ 0 root _ _",
		"2 and  and  CCONJ CC  _ 1 cc   _ _",
		"3 cats cat  NOUN  NNS _ 1 conj _ SpaceAfter=No",
		"4 .    .    PUNCT .   _ 1 punct _ _",
	),
	"Somebody buys a vehicle": rows(
		"1 Somebody somebody PRON PRP _ 2 nsubj _ _",
		"2 buys     buy      VERB VBZ _ 0 root  _ _",
		"3 a        a        DET  DT  _ 4 det   _ _",
		"4 vehicle  vehicle  NOUN NN  _ 2 dobj  _ _",
	),
	"Somebody buys a vehicle and a car": rows(
		"1 Somebody somebody PRON  PRP _ 2 nsubj _ _",
		"2 buys     buy      VERB  VBZ _ 0 root  _ _",
		"3 a        a        DET   DT  _ 4 det   _ _",
		"4 vehicle  vehicle  NOUN  NN  _ 2 dobj  _ _",
		"5 and      and      CCONJ CC  _ 4 cc    _ _",
		"6 a        a        DET   DT  _ 7 det   _ _",
		"7 car      car      NOUN  NN  _ 4 conj  4:conj|2:dobj _",
	),
	"Richard Paul Hudson came": rows(
		"1 Richard Richard PROPN NNP _ 3 compound _ SpanHead=3",
		"2 Paul    Paul    PROPN NNP _ 3 compound _ SpanHead=3",
		"3 Hudson  Hudson  PROPN NNP _ 4 nsubj    _ Ent=PERSON",
		"4 came    come    VERB  VBD _ 0 root     _ _",
	),
	"I saw Richard Paul Hudson. He came.": rows(
		"1 I       I       PRON  PRP _ 2 nsubj    _ _",
		"2 saw     see     VERB  VBD _ 0 root     _ _",
		"3 Richard Richard PROPN NNP _ 5 compound _ SpanHead=5",
		"4 Paul    Paul    PROPN NNP _ 5 compound _ SpanHead=5",
		"5 Hudson  Hudson  PROPN NNP _ 2 dobj     _ Ent=PERSON|Coref=1|SpaceAfter=No",
		"6 .       .       PUNCT .   _ 2 punct    _ _",
		"",
		"1 He      he      PRON  PRP _ 2 nsubj    _ Coref=1",
		"2 came    come    VERB  VBD _ 0 root     _ SpaceAfter=No",
		"3 .       .       PUNCT .   _ 2 punct    _ _",
	),
	"I saw Richard Paul Hudson. Hudson came": rows(
		"1 I       I       PRON  PRP _ 2 nsubj    _ _",
		"2 saw     see     VERB  VBD _ 0 root     _ _",
		"3 Richard Richard PROPN NNP _ 5 compound _ SpanHead=5",
		"4 Paul    Paul    PROPN NNP _ 5 compound _ SpanHead=5",
		"5 Hudson  Hudson  PROPN NNP _ 2 dobj     _ Ent=PERSON|Coref=1|SpaceAfter=No",
		"6 .       .       PUNCT .   _ 2 punct    _ _",
		"",
		"1 Hudson  Hudson  PROPN NNP _ 2 nsubj    _ Ent=PERSON|Coref=1",
		"2 came    come    VERB  VBD _ 0 root     _ _",
	),
	"I saw Richard Paul Hudson": rows(
		"1 I       I       PRON  PRP _ 2 nsubj    _ _",
		"2 saw     see     VERB  VBD _ 0 root     _ _",
		"3 Richard Richard PROPN NNP _ 5 compound _ SpanHead=5",
		"4 Paul    Paul    PROPN NNP _ 5 compound _ SpanHead=5",
		"5 Hudson  Hudson  PROPN NNP _ 2 dobj     _ Ent=PERSON",
	),
	"Richard Paul came": rows(
		"1 Richard Richard PROPN NNP _ 2 compound _ SpanHead=2",
		"2 Paul    Paul    PROPN NNP _ 3 nsubj    _ Ent=PERSON",
		"3 came    come    VERB  VBD _ 0 root     _ _",
	),
	"Hudson came": rows(
		"1 Hudson Hudson PROPN NNP _ 2 nsubj _ Ent=PERSON",
		"2 came   come   VERB  VBD _ 0 root  _ _",
	),
	"Peter came": rows(
		"1 Peter Peter PROPN NNP _ 2 nsubj _ Ent=PERSON",
		"2 came  come  VERB  VBD _ 0 root  _ _",
	),
	"Peter came home. The cat slept. Peter came home.": rows(
		"1 Peter Peter PROPN NNP _ 2 nsubj  _ Ent=PERSON",
		"2 came  come  VERB  VBD _ 0 root   _ _",
		"3 home  home  ADV   RB  _ 2 advmod _ SpaceAfter=No",
		"4 .     .     PUNCT .   _ 2 punct  _ _",
		"",
		"1 The   the   DET   DT  _ 2 det    _ _",
		"2 cat   cat   NOUN  NN  _ 3 nsubj  _ _",
		"3 slept sleep VERB  VBD _ 0 root   _ SpaceAfter=No",
		"4 .     .     PUNCT .   _ 3 punct  _ _",
		"",
		"1 Peter Peter PROPN NNP _ 2 nsubj  _ Ent=PERSON",
		"2 came  come  VERB  VBD _ 0 root   _ _",
		"3 home  home  ADV   RB  _ 2 advmod _ SpaceAfter=No",
		"4 .     .     PUNCT .   _ 2 punct  _ _",
	),
	"in": rows(
		"1 in in ADP IN _ 0 root _ _",
	),
	"in and in": rows(
		"1 in  in  ADP   IN _ 0 root _ _",
		"2 and and CCONJ CC _ 1 cc   _ _",
		"3 in  in  ADP   IN _ 1 conj _ _",
	),
	"A nice place": rows(
		"1 A     a     DET  DT _ 3 det  _ _",
		"2 nice  nice  ADJ  JJ _ 3 amod _ _",
		"3 place place NOUN NN _ 0 root _ _",
	),
	"Then therefore so.": rows(
		"1 Then      then      ADV   RB _ 3 advmod _ _",
		"2 therefore therefore ADV   RB _ 3 advmod _ _",
		"3 so        so        ADV   RB _ 0 root   _ SpaceAfter=No",
		"4 .         .         PUNCT .  _ 3 punct  _ _",
	),
}
