package pattern

// Match failure at the public Matcher.Match boundary is a plain bool,
// never an error value (spec.md §7: "MatchFailed (matcher, internal):
// control-flow token for backtracking. Never escapes the matcher's
// public surface, which returns an optional result."). The only errors
// that *can* escape are [NotRepresentableError] and
// [UnboundSubscriptError] from as_phones, both defined in phones.go,
// alongside the
// TargetRef-at-match-time panic documented on matchFixed, which is a
// programming-error invariant violation rather than a recoverable
// error value.
