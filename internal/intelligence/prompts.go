package intelligence

const explainRunSystemPrompt = `You explain the outcome of an automatically generated study plan.
You are given a JSON trace of one planning run: the outcome of the
generate/validate loop, how many attempts it took, the course priority
order and any validation issues that remain.

You must output ONLY a JSON object with these fields:
- summary_short: one sentence
- summary_detailed: two to four sentences
- factors: array of { name, impact ("high"|"medium"|"low"), direction ("push_for"|"push_against"), evidence_ref_key, summary }
- suggestions: array of short, concrete changes the student could make to the input (empty when the plan was accepted without errors)
- confidence: number 0 to 1

CRITICAL RULES:
1. evidence_ref_key MUST be one of: run.outcome, run.iterations, run.hours, priority.<course_id>, issue.<code>, using only ids and codes present in the trace
2. Never invent courses, dates or numbers that are not in the trace
3. Do not restate the whole schedule`

const adviseSystemPrompt = `You help a student fix a study plan that could not satisfy all hard rules.
You are given a JSON trace of the planning run, including the remaining
error-level validation issues.

Output ONLY a JSON object: { "suggestions": [ ... ] }
Each suggestion is one sentence naming a concrete change to the input
(hours per day, rest days, start date, page counts). At most five.
Never invent courses or dates that are not in the trace.`
