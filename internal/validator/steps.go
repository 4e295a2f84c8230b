package validator

// step is one stage of the pass. A step may only run after every step it
// needs; run refuses an order that breaks this.
type step struct {
	name  string
	needs []string
	run   func() error
}

func run(steps []step) error {
	done := make(map[string]bool, len(steps))
	for _, s := range steps {
		for _, n := range s.needs {
			if !done[n] {
				return fatalf("step %q needs %q, which has not run", s.name, n)
			}
		}
		if err := s.run(); err != nil {
			return err
		}
		done[s.name] = true
	}
	return nil
}

func (v *Validator) steps() []step {
	return []step{
		{name: "cycles", run: v.buildCycles},
		{name: "set_types", run: v.buildSetTypes},
		{name: "packs", needs: []string{"cycles"}, run: v.buildPacks},
		{name: "factions", run: v.buildFactions},
		{name: "types", run: v.buildTypes},
		{name: "sides", run: v.buildSides},
		{name: "cards", needs: []string{"packs", "factions", "types", "sides"}, run: v.validateCards},
		{name: "printings", needs: []string{"cards"}, run: v.validatePrintings},
		{name: "orphans", needs: []string{"packs"}, run: v.findOrphanPackFiles},
		{name: "rotations", needs: []string{"cycles"}, run: v.validateRotations},
		{name: "translations", run: v.validateTranslations},
		{name: "prebuilts", run: v.validatePrebuilts},
		{name: "mwl", run: v.validateMWL},
	}
}

func (v *Validator) legacySteps() []step {
	return []step{
		{name: "sets", run: v.buildSets},
		{name: "cards", needs: []string{"sets"}, run: v.validateLegacyCards},
		{name: "mwl", run: v.validateMWL},
	}
}
