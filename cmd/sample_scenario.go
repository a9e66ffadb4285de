// cmd/sample_scenario.go
package cmd

// sampleScenario is the starter file written by `vialsim init`. It
// exercises both dosing styles: fixed dose ranges and daily rates
// whose dose is derived from the chosen interval.
const sampleScenario = `# vialsim scenario
#
# All doses and the vial capacity are in mL, intervals and the horizon
# in days. Injections happen on days 0 <= t < horizon.
vial_capacity: 5.0
horizon: 140

people:
  # alice's dose is derived: dose = round2(daily_rate * interval).
  - name: alice
    daily_rate: { min: 0.036, max: 0.044, step: 0.002 }
    interval: { min: 6, max: 8, step: 1 }

  - name: bob
    daily_rate: { min: 0.05, max: 0.06, step: 0.005 }
    interval: { min: 5, max: 7, step: 1 }

  # carol enumerates explicit doses and joins three days late.
  - name: carol
    dose: { min: 0.2, max: 0.3, step: 0.05 }
    interval: { min: 7, max: 10, step: 1 }
    start_offset: 3
`
