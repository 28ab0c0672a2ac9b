package textnorm

// homophones maps common ASR homophone confusions to a canonical spelling.
// Both directions of a confusion pair must map to the same canonical form so
// that expected and heard text collapse together. Extending this table is a
// data change only.
var homophones = map[string]string{
	// Pronoun "I" and its frequent transcriptions.
	"eye": "i",
	"aye": "i",
	"ai":  "i",
	"ay":  "i",

	"buy": "bye",
	"by":  "bye",

	"to":  "two",
	"too": "two",

	"for":  "four",
	"fore": "four",

	"won": "one",
	"wun": "one",

	"ate":  "eight",
	"ait":  "eight",

	"know": "no",

	"write": "right",
	"rite":  "right",

	"hear": "here",

	"their":   "there",
	"they're": "there",
	"theyre":  "there",

	"sea": "see",

	"wear":  "where",
	"ware":  "where",
	"weather": "whether",

	"your":   "you're",
	"youre":  "you're",

	"it's": "its",

	"hi":   "high",
	"hour": "our",
	"sun":  "son",
	"meat": "meet",
	"week": "weak",
	"male": "mail",
	"tale": "tail",
	"plane": "plain",
	"night": "knight",
	"new":  "knew",
	"red":  "read",
	"blew": "blue",
	"would": "wood",
	"whole": "hole",
	"piece": "peace",
	"flour": "flower",
	"brake": "break",
	"steel": "steal",
	"cell":  "sell",
	"been":  "bean",
}
