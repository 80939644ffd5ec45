// Package locale supplies the localization contract consumed by the form
// engine: a Provider that translates message keys and reports the current
// language.
//
// Two implementations ship with the package. Identity passes keys through
// unchanged and answers with the environment-detected language — the
// behaviour an engine falls back to when no real localization subsystem is
// attached. MapProvider serves translations from an in-memory catalog with
// identity fallback for unknown keys, which is enough for applications that
// keep their form vocabulary in a simple key→string map.
//
// Detect resolves the process language from FORMWATCH_LANG, LC_ALL and LANG
// (in that order), normalizing values like "de_DE.UTF-8" to "de" via
// golang.org/x/text language tags. It falls back to "en".
//
// Providers are called on every validation pass and must be cheap; a provider
// backed by an expensive lookup should memoize internally.
package locale
