// Package tables holds the fixed, read-only normalization tables the
// compiler consults: sigil-to-field mappings, sort codes, and the two
// category-spelling tables. Every map here is a package-level constant
// initialized once at program start and never mutated.
package tables

// SortCriterion identifies which archive field a result set is ordered by.
type SortCriterion int

const (
	// SubmittedDate orders results by submission date.
	SubmittedDate SortCriterion = iota
	// LastUpdatedDate orders results by last-revision date.
	LastUpdatedDate
	// Relevance orders results by the archive's relevance score.
	Relevance
)

// SortDirection identifies ascending or descending order.
type SortDirection int

const (
	// Descending orders results newest/most-relevant first.
	Descending SortDirection = iota
	// Ascending orders results oldest/least-relevant first.
	Ascending
)

// String renders c the way the compiler's echo string and the CLI do:
// "Submitted Date", "Last Updated Date", or "Relevance".
func (c SortCriterion) String() string {
	switch c {
	case Relevance:
		return "Relevance"
	case LastUpdatedDate:
		return "Last Updated Date"
	default:
		return "Submitted Date"
	}
}

// String renders d as "Ascending" or "Descending".
func (d SortDirection) String() string {
	if d == Ascending {
		return "Ascending"
	}
	return "Descending"
}

// SortSpec is the (criterion, direction) pair a sort code expands to.
type SortSpec struct {
	Criterion SortCriterion
	Direction SortDirection
}

// FieldPrefixMap maps a sigil rune to the archive field prefix it stands
// for. Consulted by the lexer to decide a sigil-prefixed token's kind.
var FieldPrefixMap = map[rune]string{
	'@': "au",
	'#': "cat",
	'$': "abs",
	'*': "all",
}

// RecognizedPrefixes is the full set of archive field prefixes the
// transformer will accept on an explicit `prefix:value` FIELD token:
// the values of FieldPrefixMap plus "ti", which has no sigil of its own.
var RecognizedPrefixes = map[string]bool{
	"ti":  true,
	"au":  true,
	"abs": true,
	"cat": true,
	"all": true,
}

// SortCodes maps a lowercase one- or two-letter sort code to the
// criterion/direction it selects.
var SortCodes = map[string]SortSpec{
	"s":  {SubmittedDate, Descending},
	"sd": {SubmittedDate, Descending},
	"sa": {SubmittedDate, Ascending},
	"r":  {Relevance, Descending},
	"rd": {Relevance, Descending},
	"ra": {Relevance, Ascending},
	"l":  {LastUpdatedDate, Descending},
	"ld": {LastUpdatedDate, Descending},
	"la": {LastUpdatedDate, Ascending},
}

// CategoryAliases maps a bare (dot-free) short group name to its
// wildcard category expansion.
var CategoryAliases = map[string]string{
	"cs":     "cs.*",
	"physics": "physics.*",
	"math":   "math.*",
	"stat":   "stat.*",
	"econ":   "econ.*",
	"q-bio":  "q-bio.*",
	"q-fin":  "q-fin.*",
}

// CategoryCaseMap maps a lowercased category value to its canonical
// archive spelling. A value absent from this table is passed through
// unchanged (after lowercasing).
var CategoryCaseMap = map[string]string{
	"cs.ai":          "cs.AI",
	"cs.ar":          "cs.AR",
	"cs.cc":          "cs.CC",
	"cs.ce":          "cs.CE",
	"cs.cg":          "cs.CG",
	"cs.cl":          "cs.CL",
	"cs.cr":          "cs.CR",
	"cs.cv":          "cs.CV",
	"cs.cy":          "cs.CY",
	"cs.db":          "cs.DB",
	"cs.dc":          "cs.DC",
	"cs.dl":          "cs.DL",
	"cs.dm":          "cs.DM",
	"cs.ds":          "cs.DS",
	"cs.et":          "cs.ET",
	"cs.fl":          "cs.FL",
	"cs.gl":          "cs.GL",
	"cs.gr":          "cs.GR",
	"cs.gt":          "cs.GT",
	"cs.hc":          "cs.HC",
	"cs.ir":          "cs.IR",
	"cs.it":          "cs.IT",
	"cs.lg":          "cs.LG",
	"cs.lo":          "cs.LO",
	"cs.ma":          "cs.MA",
	"cs.mm":          "cs.MM",
	"cs.ms":          "cs.MS",
	"cs.na":          "cs.NA",
	"cs.ne":          "cs.NE",
	"cs.ni":          "cs.NI",
	"cs.os":          "cs.OS",
	"cs.pf":          "cs.PF",
	"cs.pl":          "cs.PL",
	"cs.ro":          "cs.RO",
	"cs.se":          "cs.SE",
	"cs.si":          "cs.SI",
	"cs.sy":          "cs.SY",
	"stat.ml":        "stat.ML",
	"stat.ap":        "stat.AP",
	"stat.co":        "stat.CO",
	"stat.me":        "stat.ME",
	"stat.ot":        "stat.OT",
	"stat.th":        "stat.TH",
	"math.ac":        "math.AC",
	"math.ag":        "math.AG",
	"math.ap":        "math.AP",
	"math.at":        "math.AT",
	"math.ca":        "math.CA",
	"math.co":        "math.CO",
	"math.ct":        "math.CT",
	"math.cv":        "math.CV",
	"math.dg":        "math.DG",
	"math.ds":        "math.DS",
	"math.fa":        "math.FA",
	"math.gm":        "math.GM",
	"math.gn":        "math.GN",
	"math.gr":        "math.GR",
	"math.gt":        "math.GT",
	"math.ho":        "math.HO",
	"math.kt":        "math.KT",
	"math.lo":        "math.LO",
	"math.mg":        "math.MG",
	"math.nt":        "math.NT",
	"math.oa":        "math.OA",
	"math.oc":        "math.OC",
	"math.pr":        "math.PR",
	"math.qa":        "math.QA",
	"math.rt":        "math.RT",
	"math.sg":        "math.SG",
	"math.sp":        "math.SP",
	"math.st":        "math.ST",
	"quant-ph":       "quant-ph",
	"physics.optics": "physics.optics",
	"physics.bio-ph": "physics.bio-ph",
	"physics.chem-ph": "physics.chem-ph",
	"physics.comp-ph": "physics.comp-ph",
	"physics.flu-dyn": "physics.flu-dyn",
	"physics.gen-ph": "physics.gen-ph",
	"physics.soc-ph": "physics.soc-ph",
	"q-bio.bm":       "q-bio.BM",
	"q-bio.cb":       "q-bio.CB",
	"q-bio.gn":       "q-bio.GN",
	"q-bio.mn":       "q-bio.MN",
	"q-bio.nc":       "q-bio.NC",
	"q-bio.pe":       "q-bio.PE",
	"q-bio.qm":       "q-bio.QM",
	"q-bio.sc":       "q-bio.SC",
	"q-bio.to":       "q-bio.TO",
	"q-fin.cp":       "q-fin.CP",
	"q-fin.ec":       "q-fin.EC",
	"q-fin.gn":       "q-fin.GN",
	"q-fin.mf":       "q-fin.MF",
	"q-fin.pm":       "q-fin.PM",
	"q-fin.pr":       "q-fin.PR",
	"q-fin.rm":       "q-fin.RM",
	"q-fin.st":       "q-fin.ST",
	"q-fin.tr":       "q-fin.TR",
	"econ.em":        "econ.EM",
	"econ.gn":        "econ.GN",
	"econ.th":        "econ.TH",
}
