package mcpserver

// TutorialFormatContract describes the authoring rules that LLM consumers
// should follow when adding or updating tutorials.
const TutorialFormatContract = `# Sowilo Tutorial Authoring Contract

Every tutorial in the portal is a Markdown body plus a metadata record.
Follow these rules when adding or updating tutorials.

## Metadata

- **title** (required): short, human-readable, imperative where possible
  (e.g. "Reset a Forgotten Password"). The slug and filename are derived
  from it automatically; never try to set a slug yourself.
- **category** (required): must be one of the configured category names.
  Call the ` + "`list_categories`" + ` tool first; category matching is exact and
  case-sensitive.
- **author** (optional): free-form name or team.
- **difficulty** (optional): one of Beginner, Intermediate, Advanced, or
  omitted.
- **tags** (optional): comma-separated, lowercase, kebab-case
  (e.g. ` + "`vpn, remote-access`" + `). Tags replace the stored list in full on
  update; repeat existing tags you want to keep.

## Content

` + "```" + `markdown
# Title of the Tutorial

One-sentence summary of what this guide achieves.

## Prerequisites

- Access or tooling the reader needs first.

## Steps

1. Numbered, concrete steps.
2. One action per step.
` + "```" + `

## Rules

1. **Plain Markdown only.** No frontmatter, no HTML, no templating.
2. **Start with a single H1** matching the tutorial title.
3. **Steps are numbered lists**; keep each step to one action.
4. **Encoding** is UTF-8.
5. **Updates overwrite.** Supplying content replaces the whole body; fetch
   the current body with ` + "`read_tutorial`" + ` before editing.
6. **Tutorials are never deleted.** Prefer updating an outdated guide over
   adding a near-duplicate; search first with ` + "`search_tutorials`" + `.
`
