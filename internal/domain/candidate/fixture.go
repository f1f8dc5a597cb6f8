package candidate

// FixtureVersion identifies the revision of the canonical fixture table.
// Bump it whenever a literal below changes; exported artifacts carry it.
const FixtureVersion = "1"

// FixtureSize is the number of rows in the canonical fixture.
const FixtureSize = 10

// fixture is the canonical result table, best candidate first.  It is owned
// solely by the Builder; callers always receive copies.
var fixture = [FixtureSize]Candidate{
	{ID: "Ligand-001", StructureCode: "C1=CC=C(C=C1)C(=O)O", MolecularWeight: 320, BindingAffinity: -9.2, DockingScore: 8.9, DruggabilityScore: 0.82},
	{ID: "Ligand-002", StructureCode: "CC(C)CC1=CC=C(C=C1)C(C)C(=O)O", MolecularWeight: 298, BindingAffinity: -8.8, DockingScore: 8.5, DruggabilityScore: 0.78},
	{ID: "Ligand-003", StructureCode: "C1=CC=C2C(=C1)C=CC=N2", MolecularWeight: 256, BindingAffinity: -8.5, DockingScore: 8.2, DruggabilityScore: 0.75},
	{ID: "Ligand-004", StructureCode: "CC1=CC=C(C=C1)NC(=O)C", MolecularWeight: 310, BindingAffinity: -8.3, DockingScore: 8.0, DruggabilityScore: 0.71},
	{ID: "Ligand-005", StructureCode: "C1=CC(=CC=C1O)C(=O)O", MolecularWeight: 275, BindingAffinity: -8.1, DockingScore: 7.8, DruggabilityScore: 0.68},
	{ID: "Ligand-006", StructureCode: "CC(C)NCC(C1=CC(=C(C=C1)O)CO)O", MolecularWeight: 342, BindingAffinity: -7.9, DockingScore: 7.6, DruggabilityScore: 0.65},
	{ID: "Ligand-007", StructureCode: "C1=CC=C(C=C1)CCNC(=O)C", MolecularWeight: 288, BindingAffinity: -7.7, DockingScore: 7.4, DruggabilityScore: 0.62},
	{ID: "Ligand-008", StructureCode: "CC(C)(C)NCC(C1=CC=CC=C1)O", MolecularWeight: 305, BindingAffinity: -7.5, DockingScore: 7.2, DruggabilityScore: 0.59},
	{ID: "Ligand-009", StructureCode: "C1=CC=C(C=C1)C=CC(=O)O", MolecularWeight: 294, BindingAffinity: -7.3, DockingScore: 7.0, DruggabilityScore: 0.56},
	{ID: "Ligand-010", StructureCode: "CC1=CC=C(C=C1)S(=O)(=O)N", MolecularWeight: 318, BindingAffinity: -7.1, DockingScore: 6.8, DruggabilityScore: 0.53},
}

//Personal.AI order the ending
