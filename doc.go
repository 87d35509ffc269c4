/*
Package platcheck is a property-based harness for platform-string codecs: it
generates adversarial platform strings and checks that parsing one, formatting
the resulting descriptor and parsing it again always lands on the same
descriptor.

# Concept

A platform string like "x86_64-linux-gnu" or "universal-darwin-20" names a
cpu, an operating system and an optional version, joined by dashes. Parsers
for this family of strings normalize aggressively (cpu aliases, OS match
tables, version reassembly), which makes the round-trip property easy to
break on malformed inputs. platcheck hunts for those breaks with a closed
adversarial vocabulary rather than fully random strings, so every trial is a
plausible near-miss.

# Key Features

  - Deterministic campaigns: a seed fully determines the candidate sequence.
  - One tolerated rejection: only the empty-cpu parse error discards a trial;
    any other parse error is a failure.
  - Built-in shrinking: failing candidates are minimized by fragment deletion
    and truncation before they are reported.
  - Durable failure corpus: failures can be persisted to memory, JSON files
    or Redis and browsed over HTTP.

# Usage

Check a single candidate:

	verdict := platcheck.Check("i686-mswin32-1..")
	if verdict.Kind == oracle.Failed {
		log.Fatal(verdict.Err)
	}

Or run a full campaign:

	r := platcheck.NewRunner()
	summary, err := r.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(summary.Status)

The platcheck binary wraps the same pieces with configuration, storage
backends and an HTTP read-side; see cmd/platcheck.
*/
package platcheck
