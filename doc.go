// Package peers benchmarks a single company, the subject, against a table of
// peer companies on business metrics such as valuation, total funding or
// headcount.
//
// The core functionalities include:
//   - Data Model: companies are [Record] values holding optional exact
//     metrics ([Value]), grouped in a [Table].
//   - Peer Selection: [SelectPeers] keeps the peers whose metric falls in a
//     multiplicative [Band] around the subject's own value, always keeps the
//     subject, and sorts the result into a [PeerSet].
//   - Chart Assembly: [BuildChartSpec] packages a PeerSet into a declarative,
//     renderer-agnostic [ChartSpec].
//   - Profiles: a [Profile] describes one comparison chart as data, and a
//     [Builder] runs selection and assembly for it.
//   - Persistence: tables and chart specs are encoded in human-readable JSON
//     and JSONL.
//
// The package is pure: no function performs I/O beyond the io.Reader and
// io.Writer it is given, and no input table is ever mutated. It serves as the
// foundation for the `pcmp` command-line tool.
package peers
